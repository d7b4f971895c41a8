package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"serverreport/internal/layout"
)

func createJsonReport(plan layout.Plan) (out []byte, err error) {
	out, err = json.MarshalIndent(plan, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal json report")
	}
	return
}

func createYamlReport(plan layout.Plan) (out []byte, err error) {
	out, err = yaml.Marshal(plan)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal yaml report")
	}
	return
}
