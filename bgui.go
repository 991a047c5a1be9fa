// Package bgui parses the Madness Engine's .bgui binary UI description
// format: a heuristic byte scanner plus the logical-tree reconstruction
// that bridges the file's flat physical layout to its hierarchical
// semantic model.
package bgui

import (
	"errors"
	"fmt"

	"bgui/internal/config"
	"bgui/internal/container"
	"bgui/internal/diag"
	"bgui/internal/header"
	"bgui/internal/register"
	"bgui/internal/source"
	"bgui/internal/tree"
)

// minFileLen is the smallest buffer a header read can touch without every
// field access already bottoming out as bounds-check failures.
const minFileLen = 8

// ErrFileTooShort is the fatal error for a buffer too small to contain a
// header at all.
var ErrFileTooShort = errors.New("bgui: file too short to contain a header")

// ErrRegisterNotFound is register.ErrNotFound itself, re-exported as the
// fatal error a caller sees when no register could be located.
var ErrRegisterNotFound = register.ErrNotFound

// ParsedFile is the complete output of a single parse call.
type ParsedFile struct {
	Buffer source.Buffer

	Header     header.Facts
	Containers []container.Container
	Register   []register.Entry
	Roots      []*tree.Node

	Diagnostics []diag.Diagnostic
}

// ContainerByID returns the container with the given id, or nil if no
// accepted container carries it.
func (p *ParsedFile) ContainerByID(id uint32) *container.Container {
	for i := range p.Containers {
		if p.Containers[i].ID == id {
			return &p.Containers[i]
		}
	}
	return nil
}

// HasErrors reports whether any diagnostic in the parsed result reached
// error severity. A successful Parse never produces one today, but a host
// embedding a future stricter mode can check this without a new API.
func (p *ParsedFile) HasErrors() bool {
	for _, d := range p.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// Parse runs the full C2 -> C3 -> C1 -> C4 pipeline over data using the
// default heuristics: the register bounds the container region, the
// container region bounds the header, and the tree is built last.
func Parse(data []byte) (*ParsedFile, error) {
	return ParseWithHeuristics(data, config.Default())
}

// ParseWithHeuristics is Parse with caller-supplied sanity-bound
// heuristics, letting a host tune the scanner for a modified game build.
func ParseWithHeuristics(data []byte, h config.Heuristics) (*ParsedFile, error) {
	buf := source.NewBuffer(data)
	n, err := buf.Len()
	if err != nil {
		return nil, fmt.Errorf("bgui: %w", err)
	}
	if n < minFileLen {
		return nil, ErrFileTooShort
	}

	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}

	regResult, err := register.Locate(buf, h, rep)
	if err != nil {
		if errors.Is(err, register.ErrNotFound) {
			return nil, ErrRegisterNotFound
		}
		return nil, fmt.Errorf("bgui: locate register: %w", err)
	}

	registerIDs := register.IDSet(regResult.Entries)
	containerResult, err := container.Scan(buf, regResult.RegisterStart, registerIDs, h, rep)
	if err != nil {
		return nil, fmt.Errorf("bgui: scan containers: %w", err)
	}

	headerFacts, err := header.Decode(buf, containerResult.HeaderEnd, h, rep)
	if err != nil {
		return nil, fmt.Errorf("bgui: decode header: %w", err)
	}

	containersByID := make(map[uint32]*container.Container, len(containerResult.Containers))
	for i := range containerResult.Containers {
		c := &containerResult.Containers[i]
		containersByID[c.ID] = c
	}
	treeResult := tree.Build(regResult.Entries, containersByID, rep)

	bag.Sort()
	bag.Dedup()

	return &ParsedFile{
		Buffer:      buf,
		Header:      headerFacts,
		Containers:  containerResult.Containers,
		Register:    regResult.Entries,
		Roots:       treeResult.Roots,
		Diagnostics: bag.Items(),
	}, nil
}
