package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// applyEnvOverrides copies every set environment variable named by an `env`
// tag into the matching field of cfg, descending into nested sections.
// All malformed values are reported together.
func applyEnvOverrides(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config overrides need a struct pointer, got %T", cfg)
	}

	var errs []error
	walkEnvFields(v.Elem(), func(name string, field reflect.Value) {
		raw, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if err := assignEnvValue(field, strings.TrimSpace(raw)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	})
	return errors.Join(errs...)
}

func walkEnvFields(section reflect.Value, visit func(name string, field reflect.Value)) {
	t := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		if field.Kind() == reflect.Struct {
			walkEnvFields(field, visit)
			continue
		}
		if name := t.Field(i).Tag.Get("env"); name != "" && field.CanSet() {
			visit(name, field)
		}
	}
}

func assignEnvValue(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
