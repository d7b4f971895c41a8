// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package inventory reads the servers that should appear in the report even though the
// dump holds no data for them, e.g., hosts too old to run the collection script.
package inventory

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Server is a manually declared server
type Server struct {
	ID       string `yaml:"id"`
	Hostname string `yaml:"hostname"`
}

type inventoryFile struct {
	Servers []Server `yaml:"servers"`
}

// Load reads the inventory file at path
func Load(path string) ([]Server, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "failed to read inventory file")
	}
	return Parse(data)
}

// Parse decodes inventory yaml. Every server needs an id.
func Parse(data []byte) ([]Server, error) {
	var inv inventoryFile
	if err := yaml.UnmarshalStrict(data, &inv); err != nil {
		return nil, errors.Wrap(err, "failed to parse inventory")
	}
	for i, s := range inv.Servers {
		inv.Servers[i].ID = strings.TrimSpace(s.ID)
		inv.Servers[i].Hostname = strings.TrimSpace(s.Hostname)
		if inv.Servers[i].ID == "" {
			return nil, fmt.Errorf("inventory server %d has no id", i+1)
		}
	}
	return inv.Servers, nil
}
