package media

import (
	"fmt"

	"github.com/arinc665/arinc665"
)

// Directory is an internal tree node (§3.1): a named container owned
// by a MediaSet or another Directory, holding uniquely-named child
// directories and files. The MediaSet's own root is itself a Directory with
// an empty name and a nil parent, so container operations are implemented
// once here rather than duplicated between MediaSet and Directory.
type Directory struct {
	name           string
	parent         *Directory
	ms             *MediaSet
	mediumOverride *MediumNumber

	children map[string]node
	order    []node
}

func newDirectory(name string, parent *Directory, ms *MediaSet) *Directory {
	return &Directory{name: name, parent: parent, ms: ms, children: make(map[string]node)}
}

func (d *Directory) nodeName() string          { return d.name }
func (d *Directory) setParent(p *Directory)    { d.parent = p }
func (d *Directory) getParent() *Directory     { return d.parent }
func (d *Directory) ownMedium() *MediumNumber  { return d.mediumOverride }

// Name returns the directory's own name ("" for the MediaSet root).
func (d *Directory) Name() string { return d.name }

// SetMediumOverride sets or clears (pass nil) this directory's own default
// medium number, which every descendant that does not set its own medium
// number inherits (§3.1 Medium, §3.3 is the check-value analogue of
// this same defaulting idea).
func (d *Directory) SetMediumOverride(m *MediumNumber) { d.mediumOverride = m }

func (d *Directory) insert(name string, n node) error {
	if _, exists := d.children[name]; exists {
		return &arinc665.DuplicateError{Name: name}
	}
	d.children[name] = n
	d.order = append(d.order, n)
	n.setParent(d)
	return nil
}

// AddSubdirectory creates and returns a new child Directory named name,
// failing with DuplicateError if a child with that name already exists
// (§4.3 Containment).
func (d *Directory) AddSubdirectory(name string, mediumOverride *MediumNumber) (*Directory, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	child := newDirectory(name, d, d.ms)
	child.mediumOverride = mediumOverride
	if err := d.insert(name, child); err != nil {
		return nil, err
	}
	return child, nil
}

// AddFile creates and returns a new RegularFile child named name.
func (d *Directory) AddFile(name string, mediumOverride *MediumNumber) (*RegularFile, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	f := &RegularFile{name: name, parent: d, ms: d.ms, mediumOverride: mediumOverride}
	if err := d.insert(name, f); err != nil {
		return nil, err
	}
	d.ms.regularFiles = append(d.ms.regularFiles, f)
	return f, nil
}

// AddLoad creates and returns a new Load child named name.
func (d *Directory) AddLoad(name string, mediumOverride *MediumNumber) (*Load, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	l := &Load{name: name, parent: d, ms: d.ms, mediumOverride: mediumOverride}
	if err := d.insert(name, l); err != nil {
		return nil, err
	}
	d.ms.loads = append(d.ms.loads, l)
	return l, nil
}

// AddBatch creates and returns a new Batch child named name.
func (d *Directory) AddBatch(name string, mediumOverride *MediumNumber) (*Batch, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	b := &Batch{name: name, parent: d, ms: d.ms, mediumOverride: mediumOverride}
	if err := d.insert(name, b); err != nil {
		return nil, err
	}
	d.ms.batches = append(d.ms.batches, b)
	return b, nil
}

// Children returns this directory's direct children in insertion order.
func (d *Directory) Children() []node { return append([]node{}, d.order...) }

// Subdirectories returns this directory's direct child directories, in
// insertion order.
func (d *Directory) Subdirectories() []*Directory {
	var out []*Directory
	for _, n := range d.order {
		if sub, ok := n.(*Directory); ok {
			out = append(out, sub)
		}
	}
	return out
}

// RemoveChild removes the named child, failing with InUseError if it is a
// RegularFile referenced by any Load or a Load referenced by any Batch
// (invariant 3).
func (d *Directory) RemoveChild(name string) error {
	n, ok := d.children[name]
	if !ok {
		return fmt.Errorf("arinc665: no child named %q", name)
	}
	switch c := n.(type) {
	case *RegularFile:
		if refs := d.ms.LoadsWithFile(c); len(refs) > 0 {
			return &arinc665.InUseError{Name: name}
		}
	case *Load:
		if refs := d.ms.BatchesWithLoad(c); len(refs) > 0 {
			return &arinc665.InUseError{Name: name}
		}
	}
	delete(d.children, name)
	for i, existing := range d.order {
		if existing == n {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	removeFromRegistry(d.ms, n)
	return nil
}

func removeFromRegistry(ms *MediaSet, n node) {
	switch c := n.(type) {
	case *RegularFile:
		ms.regularFiles = removeFile(ms.regularFiles, c)
	case *Load:
		ms.loads = removeLoad(ms.loads, c)
	case *Batch:
		ms.batches = removeBatch(ms.batches, c)
	}
}

func removeFile(s []*RegularFile, target *RegularFile) []*RegularFile {
	out := s[:0]
	for _, f := range s {
		if f != target {
			out = append(out, f)
		}
	}
	return out
}

func removeLoad(s []*Load, target *Load) []*Load {
	out := s[:0]
	for _, l := range s {
		if l != target {
			out = append(out, l)
		}
	}
	return out
}

func removeBatch(s []*Batch, target *Batch) []*Batch {
	out := s[:0]
	for _, b := range s {
		if b != target {
			out = append(out, b)
		}
	}
	return out
}

// RecursiveRegularFiles returns every RegularFile in this subtree,
// depth-first, in traversal order.
func (d *Directory) RecursiveRegularFiles() []*RegularFile {
	var out []*RegularFile
	for _, n := range d.order {
		switch c := n.(type) {
		case *RegularFile:
			out = append(out, c)
		case *Directory:
			out = append(out, c.RecursiveRegularFiles()...)
		}
	}
	return out
}

// RecursiveLoads returns every Load in this subtree, depth-first.
func (d *Directory) RecursiveLoads() []*Load {
	var out []*Load
	for _, n := range d.order {
		switch c := n.(type) {
		case *Load:
			out = append(out, c)
		case *Directory:
			out = append(out, c.RecursiveLoads()...)
		}
	}
	return out
}

// RecursiveBatches returns every Batch in this subtree, depth-first.
func (d *Directory) RecursiveBatches() []*Batch {
	var out []*Batch
	for _, n := range d.order {
		switch c := n.(type) {
		case *Batch:
			out = append(out, c)
		case *Directory:
			out = append(out, c.RecursiveBatches()...)
		}
	}
	return out
}

// RecursiveFileFilter narrows RecursiveFiles by filename and/or effective
// medium; a zero value (empty name, medium 0) for either field means "don't
// filter on this".
type RecursiveFileFilter struct {
	Filename string
	Medium   MediumNumber
}

// RecursiveFiles returns every node that carries a filename (RegularFile,
// Load, Batch — not Directory) in this subtree, depth-first, matching
// filter.
func (d *Directory) RecursiveFiles(filter RecursiveFileFilter) []node {
	var out []node
	var walk func(dir *Directory)
	walk = func(dir *Directory) {
		for _, n := range dir.order {
			switch c := n.(type) {
			case *Directory:
				walk(c)
			default:
				if filter.Filename != "" && n.nodeName() != filter.Filename {
					continue
				}
				if filter.Medium != 0 && EffectiveMedium(n) != filter.Medium {
					continue
				}
				out = append(out, n)
			}
		}
	}
	walk(d)
	return out
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("arinc665: invalid name %q", name)
	}
	return nil
}
