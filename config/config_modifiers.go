// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"encoding/json"
	"github.com/pkg/errors"
	"io/ioutil"
	"math"
	"os"
	"strings"
	"time"
)

// Mutate
func (c *config) Modify(newValues ...TimeoutConfigKeyValue) {
	for _, kv := range newValues {
		c.kv[kv.Key] = kv.Value
	}
}

func modifyFromJson(cfg mutableTimeoutConfig, source string) error {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	if err := populateConfig(cfg, data); err != nil {
		return err
	}

	return nil
}

func convertKeyName(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", "_", -1))
}

func parseWholeNumber(f64 float64, max float64) (uint64, error) {
	if f64 < 0 || f64 > max || f64 != math.Trunc(f64) {
		return 0, errors.Errorf("%v is not a whole number between 0 and %.0f", f64, max)
	}
	return uint64(f64), nil
}

func parseUint64List(values []interface{}) ([]uint64, error) {
	list := make([]uint64, 0, len(values))
	for _, value := range values {
		f64, ok := value.(float64)
		if !ok {
			return nil, errors.Errorf("list item %v is not a number", value)
		}

		// float64 cannot represent every uint64, 2^53 units is plenty for extensions
		u, err := parseWholeNumber(f64, 1<<53)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, nil
}

func populateConfig(cfg mutableTimeoutConfig, data map[string]interface{}) error {
	for key, value := range data {
		switch value.(type) {
		case bool:
			cfg.SetBool(convertKeyName(key), value.(bool))
		case float64:
			u, err := parseWholeNumber(value.(float64), math.MaxUint32)
			if err != nil {
				return errors.Wrapf(err, "could not decode value for config key %s", key)
			}
			cfg.SetUint32(convertKeyName(key), uint32(u))
		case string:
			if duration, decodeError := time.ParseDuration(value.(string)); decodeError != nil {
				cfg.SetString(convertKeyName(key), value.(string))
			} else {
				cfg.SetDuration(convertKeyName(key), duration)
			}
		case []interface{}:
			list, err := parseUint64List(value.([]interface{}))
			if err != nil {
				return errors.Wrapf(err, "could not decode value for config key %s", key)
			}
			cfg.SetUint64List(convertKeyName(key), list)
		default:
			return errors.Errorf("unsupported value type %T for config key %s", value, key)
		}
	}

	return nil
}

// For main reading several files into one config

type FilesPaths []string

func (i *FilesPaths) String() string {
	return strings.Join(*i, ",")
}

func (i *FilesPaths) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func GetTimeoutConfigFromFiles(configFiles FilesPaths) (TimeoutConfig, error) {
	cfg := ForProduction()

	for _, configFile := range configFiles {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, errors.Errorf("could not open config file: %s", err)
		}

		contents, err := ioutil.ReadFile(configFile)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", configFile)
		}

		if err := modifyFromJson(cfg, string(contents)); err != nil {
			return nil, errors.Wrapf(err, "could not parse config file %s", configFile)
		}
	}

	return cfg, nil
}
