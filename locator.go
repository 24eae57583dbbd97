package opaquekeys

import (
	"fmt"
	"strings"
)

// Tagged-segment prefixes of the plus-separated locator grammar.
const (
	branchPrefix    = "branch"
	versionPrefix   = "version"
	blockTypePrefix = "type"
	blockPrefix     = "block"
)

// locatorBody holds the fields of a parsed plus-separated locator body.
type locatorBody struct {
	org, course, run string
	branch, version  string
	blockType        string
	blockID          string
}

// Segment ordering for the locator grammar. Positional fields come first,
// tagged fields follow in a fixed order, each at most once.
const (
	stagePositional = iota
	stageBranch
	stageVersion
	stageBlockType
	stageBlockID
)

// parseLocatorBody parses a namespace-stripped locator body of the form
//
//	[org+course[+run]][+branch@B][+version@V][+type@T][+block@ID]
//
// Empty segments (including one produced by a trailing '+') and out-of-order
// or repeated tags are rejected. When wantBlock is false the type@ and
// block@ segments are rejected outright: text that carries them was meant to
// be a different kind of key and must not parse as a context key with the
// tail silently dropped. blockIDClass is the character class for the block@
// value; usage block ids and asset paths admit '%', library block ids do not.
func parseLocatorBody(body string, wantBlock bool, blockIDClass func(rune) bool) (locatorBody, error) {
	var lb locatorBody
	stage := stagePositional
	npos := 0

	for _, part := range strings.Split(body, "+") {
		if part == "" {
			return lb, fmt.Errorf("empty segment (trailing or doubled '+')")
		}
		tag, value := cutLocatorTag(part)
		if tag == "" {
			if stage != stagePositional {
				return lb, fmt.Errorf("field %q after tagged segments", part)
			}
			if npos == 3 {
				return lb, fmt.Errorf("too many fields before %q", part)
			}
			if !isValidID(part) {
				return lb, fmt.Errorf("field %q contains characters outside the allowed class", part)
			}
			switch npos {
			case 0:
				lb.org = part
			case 1:
				lb.course = part
			case 2:
				lb.run = part
			}
			npos++
			continue
		}

		switch tag {
		case branchPrefix:
			if stage >= stageBranch {
				return lb, fmt.Errorf("branch@ out of order or repeated")
			}
			if !isValidID(value) {
				return lb, fmt.Errorf("branch %q contains characters outside the allowed class", value)
			}
			stage = stageBranch
			lb.branch = value
		case versionPrefix:
			if stage >= stageVersion {
				return lb, fmt.Errorf("version@ out of order or repeated")
			}
			if !isVersionGUID(value) {
				return lb, fmt.Errorf("version %q is not 24 lowercase hex characters", value)
			}
			stage = stageVersion
			lb.version = value
		case blockTypePrefix:
			if !wantBlock {
				return lb, fmt.Errorf("unexpected type@ segment")
			}
			if stage >= stageBlockType {
				return lb, fmt.Errorf("type@ out of order or repeated")
			}
			if !isValidID(value) {
				return lb, fmt.Errorf("block type %q contains characters outside the allowed class", value)
			}
			stage = stageBlockType
			lb.blockType = value
		case blockPrefix:
			if !wantBlock {
				return lb, fmt.Errorf("unexpected block@ segment")
			}
			if stage >= stageBlockID {
				return lb, fmt.Errorf("block@ repeated")
			}
			if !matchesClass(value, blockIDClass) {
				return lb, fmt.Errorf("block id %q contains characters outside the allowed class", value)
			}
			stage = stageBlockID
			lb.blockID = value
		}
	}

	if npos == 1 {
		return lb, fmt.Errorf("org %q without a course", lb.org)
	}
	return lb, nil
}

// cutLocatorTag splits a segment at its '@' when the prefix is one of the
// recognized tags. Anything else is a positional field; the character class
// check downstream rejects stray '@' runes in it.
func cutLocatorTag(part string) (tag, value string) {
	prefix, rest, found := strings.Cut(part, "@")
	if !found {
		return "", ""
	}
	switch prefix {
	case branchPrefix, versionPrefix, blockTypePrefix, blockPrefix:
		return prefix, rest
	}
	return "", ""
}

// checkContext enforces the context identity rule shared by course and
// library bodies: org and course arrive together, and at least one of the
// org pair or a version guid must be present.
func (lb locatorBody) checkContext() error {
	if (lb.org == "") != (lb.course == "") {
		return fmt.Errorf("org and course must be supplied together")
	}
	if lb.org == "" && lb.version == "" {
		return fmt.Errorf("either org+course or a version guid is required")
	}
	return nil
}
