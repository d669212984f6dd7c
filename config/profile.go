// Package config loads and initializes the project profile: the `snek.toml`
// file which holds the default build settings of a project directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"snek/codegen"
	"snek/common"
	"snek/report"
)

// Profile is the set of build settings a compilation runs with.
type Profile struct {
	// Target should be one of the enumerated compilation targets.
	Target int

	// The path to write the compiled output to.  When empty, it is derived
	// from the path of the source file.
	OutputPath string

	// Arithmetic should be one of the enumerated arithmetic modes.
	Arithmetic int

	// LogLevel should be one of the enumerated log levels.
	LogLevel int
}

// DefaultProfile returns the profile used when no profile file exists.
func DefaultProfile() *Profile {
	return &Profile{
		Target:     common.TargetWAT,
		Arithmetic: codegen.ArithSigned,
		LogLevel:   report.LogLevelVerbose,
	}
}

// tomlProfileFile represents the profile file as it is encoded in TOML.
type tomlProfileFile struct {
	Build *tomlBuild `toml:"build"`
}

// tomlBuild represents the `[build]` table of the profile file.
type tomlBuild struct {
	Target     string `toml:"target"`
	Output     string `toml:"output,omitempty"`
	Arithmetic string `toml:"arithmetic"`
	LogLevel   string `toml:"loglevel"`
}

// Load loads the profile file in dir.  If no profile file exists, the default
// profile is returned.
func Load(dir string) (*Profile, error) {
	profPath := filepath.Join(dir, common.ProfileFileName)

	buff, err := os.ReadFile(profPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultProfile(), nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading profile file at `%s`: %w", profPath, err)
	}

	tomlFile := &tomlProfileFile{}
	if err := toml.Unmarshal(buff, tomlFile); err != nil {
		return nil, fmt.Errorf("error parsing profile file at `%s`: %w", profPath, err)
	}

	prof, err := validateProfile(dir, tomlFile)
	if err != nil {
		return nil, fmt.Errorf("invalid profile file at `%s`: %w", profPath, err)
	}

	return prof, nil
}

// validateProfile checks that the decoded profile is valid and converts it into
// a profile.
func validateProfile(dir string, tomlFile *tomlProfileFile) (*Profile, error) {
	prof := DefaultProfile()
	if tomlFile.Build == nil {
		return prof, nil
	}

	var ok bool
	if prof.Target, ok = common.ParseTarget(tomlFile.Build.Target); !ok {
		return nil, fmt.Errorf("unknown target: `%s`", tomlFile.Build.Target)
	}

	if prof.Arithmetic, ok = codegen.ParseArithmetic(tomlFile.Build.Arithmetic); !ok {
		return nil, fmt.Errorf("unknown arithmetic mode: `%s`", tomlFile.Build.Arithmetic)
	}

	if prof.LogLevel, ok = report.ParseLogLevel(tomlFile.Build.LogLevel); !ok {
		return nil, fmt.Errorf("unknown log level: `%s`", tomlFile.Build.LogLevel)
	}

	// Output paths are relative to the profile directory.
	if output := tomlFile.Build.Output; output != "" {
		if filepath.IsAbs(output) {
			prof.OutputPath = output
		} else {
			prof.OutputPath = filepath.Join(dir, output)
		}
	}

	return prof, nil
}

// Init writes a profile file with the default settings to dir.  It never
// overwrites an existing profile file.
func Init(dir string) error {
	profPath := filepath.Join(dir, common.ProfileFileName)

	_, err := os.Stat(profPath)
	if err == nil {
		return errors.New("profile file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("profile file error: %w", err)
	}

	buff, err := toml.Marshal(&tomlProfileFile{
		Build: &tomlBuild{
			Target:     "wat",
			Arithmetic: "signed",
			LogLevel:   "verbose",
		},
	})
	if err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}

	if err := os.WriteFile(profPath, buff, 0o644); err != nil {
		return fmt.Errorf("error creating profile file: %w", err)
	}

	return nil
}
