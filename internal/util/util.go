/*
Package util includes file and path helpers used by the commands.
*/
package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrInputNotFound is returned when the dump file does not exist
var ErrInputNotFound = errors.New("input file not found")

// ExpandUser expands '~' to user's home directory, if found, otherwise returns original path
func ExpandUser(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	} else if strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}

// AbsPath returns absolute path after expanding '~' to user's home dir
func AbsPath(path string) (string, error) {
	return filepath.Abs(ExpandUser(path))
}

// FileExists checks if a regular file exists at the given path. It returns an error if the
// path refers to something other than a regular file, e.g., a directory.
func FileExists(path string) (exists bool, err error) {
	var fileInfo fs.FileInfo
	fileInfo, err = os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
		}
		return
	}
	if !fileInfo.Mode().IsRegular() {
		err = fmt.Errorf("%s not a file", path)
		return
	}
	exists = true
	return
}

// ReadInput reads the whole dump into memory
func ReadInput(path string) (string, error) {
	absPath, err := AbsPath(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand input path %s", path)
	}
	exists, err := FileExists(absPath)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors.Wrap(ErrInputNotFound, absPath)
	}
	data, err := os.ReadFile(absPath) // #nosec G304
	if err != nil {
		return "", errors.Wrapf(err, "failed to read input file %s", absPath)
	}
	return string(data), nil
}

// ReplaceExtension swaps the extension of path for ext, ext without the leading dot
func ReplaceExtension(path string, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// WriteFiles writes every file or none: all contents are written to temporary files in the
// destination directories first and only renamed into place once every write succeeded.
func WriteFiles(files map[string][]byte) error {
	temps := make(map[string]string, len(files))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}
	for path, data := range files {
		tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
		if err != nil {
			cleanup()
			return errors.Wrapf(err, "failed to create %s", path)
		}
		temps[path] = tmp.Name()
		_, err = tmp.Write(data)
		closeErr := tmp.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			cleanup()
			return errors.Wrapf(err, "failed to write %s", path)
		}
	}
	for path, tmp := range temps {
		if err := os.Chmod(tmp, 0644); err != nil { // #nosec G302
			cleanup()
			return err
		}
		if err := os.Rename(tmp, path); err != nil {
			cleanup()
			return errors.Wrapf(err, "failed to move %s into place", path)
		}
		delete(temps, path)
	}
	return nil
}
