// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package specmodel

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash returns the spec's provenance hash: SHA-256 of a canonicalized
// textual serialization, truncated to 16 hex characters. The
// canonicalization is independent of YAML key order and whitespace so two
// structurally-identical specs hash identically regardless of how they
// were formatted on disk.
func (s *Spec) Hash() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id=%s\n", s.ID)
	for _, v := range s.Inputs {
		fmt.Fprintf(&b, "in:%s:%s:%s\n", v.Name, v.Type, strings.Join(v.Values, ","))
	}
	for _, v := range s.Outputs {
		fmt.Fprintf(&b, "out:%s:%s:%s\n", v.Name, v.Type, strings.Join(v.Values, ","))
	}
	rules := make([]Rule, len(s.Rules))
	copy(rules, s.Rules)
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	for _, r := range rules {
		fmt.Fprintf(&b, "rule:%s:%d:%s:%s\n", r.ID, r.Priority, r.AsCEL(), outputCanon(r.Then))
	}
	if s.Default != nil {
		fmt.Fprintf(&b, "default:%s\n", outputCanon(*s.Default))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}

func outputCanon(o Output) string {
	if o.IsMap || o.Named != nil {
		keys := make([]string, 0, len(o.Named))
		for k := range o.Named {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "%s=%s;", k, o.Named[k].String())
		}
		return b.String()
	}
	return o.Single.String()
}
