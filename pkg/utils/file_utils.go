package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsDirectory checks if the path is a directory
func IsDirectory(path string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return fileInfo.IsDir(), err
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	fileInfo, err := os.Stat(filename)
	if os.IsNotExist(err) || err != nil {
		return false
	}
	return !fileInfo.IsDir()
}

// TrimBasePathFromPath trims the base path prefix from the path
func TrimBasePathFromPath(basePath string, path string) string {
	return strings.TrimPrefix(path, basePath)
}

// JoinAbsolutePathWithPath returns the provided path if it is already
// absolute, otherwise joins it with the base path and converts the result to
// an absolute path
func JoinAbsolutePathWithPath(basePath string, providedPath string) (string, error) {
	if filepath.IsAbs(providedPath) {
		return providedPath, nil
	}

	joinedPath := path.Join(basePath, providedPath)
	if filepath.IsAbs(joinedPath) {
		return joinedPath, nil
	}

	absPath, err := filepath.Abs(joinedPath)
	if err != nil {
		return "", err
	}

	return absPath, nil
}

// EnsureDir accepts a file path and creates all the intermediate subdirectories
func EnsureDir(fileName string) error {
	dirName := filepath.Dir(fileName)
	if _, err := os.Stat(dirName); err != nil {
		err := os.MkdirAll(dirName, os.ModePerm)
		if err != nil {
			return err
		}
	}
	return nil
}

// PrintMessage prints the message to the console
func PrintMessage(message string) {
	fmt.Println(message)
}
