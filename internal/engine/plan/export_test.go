package plan

import "io/fs"

// NewValidatorWithStat returns a Validator using stat instead of os.Stat.
func NewValidatorWithStat(stat func(string) (fs.FileInfo, error)) *Validator {
	return &Validator{stat: stat}
}
