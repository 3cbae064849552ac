// Package config manages user-level settings stored at ~/.lettuce/config.yaml.
// Values come from the config file, LETTUCE_* environment variables and a
// .env file in the working directory, in increasing order of precedence
// for the environment. Load gathers them into a Settings value.
package config
