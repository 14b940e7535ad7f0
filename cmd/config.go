package cmd

// Config carries all environment-driven settings of the application.
// Monetary minimums are in minor currency units; a zero minimum disables
// the compliance check for that pricing mode.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ConfirmationTimeoutHours int

	MinFixedPrice      int64
	MinPerDistanceRate int64
	MinPerWeightRate   int64
}
