package registry

import "strings"

// Validator decides whether a digit string is a checksum-valid taxpayer id
// for one country. Validation is purely arithmetical; it never touches the
// network.
type Validator interface {
	Country() Country
	Valid(id string) bool
}

// Validators returns the validators in resolution priority order. The first
// match wins, so the stricter checksum formats come first.
func Validators() []Validator {
	return []Validator{
		RussiaValidator{},
		KazakhstanValidator{},
		BelarusValidator{},
		UzbekistanValidator{},
	}
}

func digitsOf(id string) ([]int, bool) {
	out := make([]int, len(id))
	for i, r := range id {
		if r < '0' || r > '9' {
			return nil, false
		}
		out[i] = int(r - '0')
	}
	return out, true
}

// RussiaValidator checks the 10-digit and 12-digit INN control numbers.
type RussiaValidator struct{}

func (RussiaValidator) Country() Country { return CountryRussia }

var (
	innWeights10 = []int{2, 4, 10, 3, 5, 9, 4, 6, 8}
	innWeights11 = []int{7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
	innWeights12 = []int{3, 7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
)

func innControl(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	return sum % 11 % 10
}

// Valid accepts the INN with or without the spaces some workbooks put
// between digit groups.
func (RussiaValidator) Valid(id string) bool {
	digits, ok := digitsOf(strings.ReplaceAll(id, " ", ""))
	if !ok {
		return false
	}
	switch len(digits) {
	case 10:
		return innControl(digits, innWeights10) == digits[9]
	case 12:
		return innControl(digits, innWeights11) == digits[10] &&
			innControl(digits, innWeights12) == digits[11]
	default:
		return false
	}
}

// KazakhstanValidator checks the 12-digit BIN/IIN control number.
type KazakhstanValidator struct{}

func (KazakhstanValidator) Country() Country { return CountryKazakhstan }

func (KazakhstanValidator) Valid(id string) bool {
	digits, ok := digitsOf(id)
	if !ok || len(digits) != 12 {
		return false
	}
	sum := 0
	for i := 0; i < 11; i++ {
		sum += digits[i] * (i + 1)
	}
	control := sum % 11
	if control == 10 {
		// Second weighting pass, shifted by two.
		weights := []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 1, 2}
		sum = 0
		for i := 0; i < 11; i++ {
			sum += digits[i] * weights[i]
		}
		control = sum % 11
		if control == 10 {
			return false
		}
	}
	return control == digits[11]
}

// BelarusValidator checks the 9-digit UNP control number.
type BelarusValidator struct{}

func (BelarusValidator) Country() Country { return CountryBelarus }

var (
	unpWeights         = []int{29, 23, 19, 17, 13, 7, 5, 3}
	unpFallbackWeights = []int{23, 19, 17, 13, 7, 5, 3}
)

func (BelarusValidator) Valid(id string) bool {
	digits, ok := digitsOf(id)
	if !ok || len(digits) != 9 {
		return false
	}
	allZero := true
	for _, d := range digits {
		if d != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return false
	}
	sum := 0
	for i, w := range unpWeights {
		sum += digits[i] * w
	}
	control := sum % 11
	if control == 10 {
		sum = 0
		for i, w := range unpFallbackWeights {
			sum += digits[i+1] * w
		}
		control = sum % 11
		if control >= 10 {
			return false
		}
	}
	return control == digits[8]
}

// UzbekistanValidator checks the 9-digit INN range. The format carries no
// checksum; legal entities start with 3..8.
type UzbekistanValidator struct{}

func (UzbekistanValidator) Country() Country { return CountryUzbekistan }

func (UzbekistanValidator) Valid(id string) bool {
	if len(id) != 9 {
		return false
	}
	if _, ok := digitsOf(id); !ok {
		return false
	}
	return id[0] >= '3' && id[0] <= '8'
}
