package constant

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200

	PassRateDigits = 4
)
