package utils

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//ListDir returns a list of files/ directories in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if files, err := ioutil.ReadDir(path); err != nil {
		return nil, fmt.Errorf("ListDir: Error, got '%v'", err)
	} else {
		for _, f := range files {
			names = append(names, f.Name())
		}
	}

	return names, nil
}

//EnsureDir creates given directory (and its parents) in case it does not exist yet
func EnsureDir(path string) error {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("EnsureDir: Error, got '%v'", err)
		}

		if err := os.MkdirAll(path, 0766); err != nil {
			return fmt.Errorf("EnsureDir: Error creating '%s', got '%v'", path, err)
		}
	}

	return nil
}

//VideoBaseName returns given video file name without its directory and extension ("games/final.mp4" => "final")
func VideoBaseName(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
