package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	defaultFormat = "%g"
	defaultPrompt = "> "
)

// Config holds the settings of one calc execution.
type Config struct {
	In        string `key:"in"`
	Format    string `key:"fmt" validate:"fmtverb"`
	Lines     bool   `key:"lines"`
	Echo      bool   `key:"echo"`
	Glyphs    bool   `key:"glyphs"`
	Prompt    string `key:"prompt"`
	LogLevel  string `key:"log-level" validate:"oneof=panic fatal error warn warning info debug trace"`
	LogFormat string `key:"log-format" validate:"oneof=text json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("key")
	})
	err := v.RegisterValidation("fmtverb", func(fl validator.FieldLevel) bool {
		return floatVerb(fl.Field().String())
	})
	if err != nil {
		panic("calc: registering validation: " + err.Error())
	}
	return v
}

// floatVerb reports whether format has exactly one verb and that verb
// formats a float64. %% is literal text.
func floatVerb(format string) bool {
	n := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && strings.IndexByte("+-# 0123456789.", format[i]) >= 0 {
			i++
		}
		if i == len(format) {
			return false
		}
		if format[i] == '%' {
			if format[i-1] != '%' {
				// Flags before %% make it a verb.
				return false
			}
			continue
		}
		if strings.IndexByte("beEfFgGxXv", format[i]) < 0 {
			return false
		}
		n++
	}
	return n == 1
}

// check reports the first invalid setting in cfg.
func (cfg *Config) check() error {
	err := validate.Struct(cfg)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	e := verrs[0]
	switch e.Tag() {
	case "fmtverb":
		return fmt.Errorf("result format %q must contain exactly one floating-point verb", e.Value())
	case "oneof":
		return fmt.Errorf("invalid %s %q: must be one of %s", e.Field(), e.Value(), e.Param())
	default:
		return fmt.Errorf("invalid %s %q", e.Field(), e.Value())
	}
}

// loadConfig resolves settings from flags bound to v, CALC_ environment
// variables, and an optional config file, in that order of priority.
func loadConfig(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("calc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := v.GetString("config")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("calc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/calc")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		In:        v.GetString("in"),
		Format:    v.GetString("fmt"),
		Lines:     v.GetBool("lines"),
		Echo:      v.GetBool("echo"),
		Glyphs:    v.GetBool("glyphs"),
		Prompt:    v.GetString("prompt"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}
