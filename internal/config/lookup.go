package config

import "os"

func lookupEnv(name string) bool {
	for _, key := range []string{namespace + "_" + name, name} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return true
		}
	}
	return false
}
