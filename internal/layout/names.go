// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// MaxPageNameLength is the longest sheet name a workbook accepts
const MaxPageNameLength = 31

// DuplicatePolicy decides what happens when two servers map to the same page name
type DuplicatePolicy string

const (
	DuplicateSuffix DuplicatePolicy = "suffix" // append " (2)", " (3)", ...
	DuplicateReject DuplicatePolicy = "reject" // fail the run
)

// DuplicatePolicies lists the accepted policies
var DuplicatePolicies = []string{string(DuplicateSuffix), string(DuplicateReject)}

// ErrDuplicatePage is returned under DuplicateReject when a page name is already taken
var ErrDuplicatePage = errors.New("duplicate page name")

const fallbackPageName = "Server"

var invalidSheetChars = strings.NewReplacer(":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")

// SanitizePageName makes name acceptable as a sheet name
func SanitizePageName(name string) string {
	name = invalidSheetChars.Replace(strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	name = truncateRunes(name, MaxPageNameLength)
	if strings.TrimSpace(name) == "" {
		return fallbackPageName
	}
	return name
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n]), "'")
}

// PageNamer hands out unique page names. Names are compared case-insensitively, as
// workbooks do.
type PageNamer struct {
	policy DuplicatePolicy
	used   mapset.Set[string]
}

// NewPageNamer returns a namer that treats the reserved names as already used
func NewPageNamer(policy DuplicatePolicy, reserved ...string) (*PageNamer, error) {
	switch policy {
	case DuplicateSuffix, DuplicateReject:
	case "":
		policy = DuplicateSuffix
	default:
		return nil, fmt.Errorf("duplicate policy options are: %s", strings.Join(DuplicatePolicies, ", "))
	}
	n := &PageNamer{policy: policy, used: mapset.NewThreadUnsafeSet[string]()}
	for _, name := range reserved {
		n.used.Add(strings.ToLower(name))
	}
	return n, nil
}

// Name returns the page name for a server id
func (n *PageNamer) Name(id string) (string, error) {
	base := SanitizePageName(id)
	if n.used.Add(strings.ToLower(base)) {
		return base, nil
	}
	if n.policy == DuplicateReject {
		return "", errors.Wrapf(ErrDuplicatePage, "server %q maps to page %q", id, base)
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate := truncateRunes(base, MaxPageNameLength-len(suffix)) + suffix
		if n.used.Add(strings.ToLower(candidate)) {
			return candidate, nil
		}
	}
}
