package dex

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"dxread/internal/dexio"
)

// OpenBytes builds a Reader from a raw, already-uncompressed DEX image.
// It is a thin wrapper over NewReader kept alongside OpenArchive so
// callers don't need to import dexio directly.
func OpenBytes(image []byte, cfg Config) (*Reader, error) {
	return NewReader(image, cfg)
}

// Open reads path, sniffs its magic, and dispatches to OpenBytes or
// OpenArchive before piping dv through whichever one it built.
func Open(path string, dv DexFileVisitor, cfg Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) >= 4 && string(data[:4]) == magicPrefix {
		r, err := OpenBytes(data, cfg)
		if err != nil {
			return err
		}
		return r.Pipe(dv)
	}
	mr, err := OpenArchive(data, cfg)
	if err != nil {
		return err
	}
	return mr.Pipe(dv)
}

// MultiReader pipes a sequence of Readers, one per *.dex member of an
// archive, dispatching to the same DexFileVisitor in archive order
// (§6). VisitEnd is only called once, after the last member.
type MultiReader struct {
	readers []*Reader
}

// OpenArchive sniffs data as either a raw DEX image (magic "dex\n") or a
// ZIP-like archive (magic "PK\x03\x04") containing one or more entries
// matching classes.dex / classesN.dex, and returns a MultiReader that
// visits every discovered member in archive-declaration order — the
// order the zip's central directory lists them in, not a sort.
//
// Grounded on the plain zip-walk shape a stock APK reader uses to find
// its dex entries — no manifest or resource table parsing, since this
// reader only cares about the dex payloads.
func OpenArchive(data []byte, cfg Config) (*MultiReader, error) {
	if len(data) >= 4 && string(data[:4]) == magicPrefix {
		r, err := NewReader(data, cfg)
		if err != nil {
			return nil, err
		}
		return &MultiReader{readers: []*Reader{r}}, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DexError{Msg: fmt.Sprintf("not a .dex or zip: %v", err)}
	}

	var entries []*zip.File
	for _, f := range zr.File {
		if isDexEntryName(f.Name) {
			entries = append(entries, f)
		}
	}
	if len(entries) == 0 {
		return nil, &DexError{Msg: "archive contains no dex entries"}
	}

	mr := &MultiReader{}
	for _, f := range entries {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		image, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		r, err := NewReader(image, cfg)
		if err != nil {
			return nil, err
		}
		mr.readers = append(mr.readers, r)
	}
	return mr, nil
}

func isDexEntryName(name string) bool {
	const prefix, suffix = "classes", ".dex"
	return len(name) > len(prefix)+len(suffix)-1 &&
		name[:len(prefix)] == prefix &&
		name[len(name)-len(suffix):] == suffix
}

// Pipe drives dv through every member Reader in order, dispatched as a
// single logical stream: members come in the order OpenArchive found
// them (archive-declaration order), each member's class_def_items in
// class_defs order. Under FlagIgnoreReadException every member is
// piped and the class failures of all members are returned together.
func (mr *MultiReader) Pipe(dv DexFileVisitor) error {
	var errs *multierror.Error
	for i, r := range mr.readers {
		var err error
		if i == len(mr.readers)-1 {
			err = r.Pipe(dv)
		} else {
			err = r.pipeWithoutEnd(dv)
		}
		if err == nil {
			continue
		}
		if !r.has(FlagIgnoreReadException) {
			return err
		}
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// pipeWithoutEnd runs the same per-class loop as Pipe but leaves the
// terminal dv.VisitEnd() to the caller, since a MultiReader with more
// than one member must only call it once, after the last member.
func (r *Reader) pipeWithoutEnd(dv DexFileVisitor) error {
	var errs *multierror.Error
	for ci := 0; ci < r.h.classDefs.count; ci++ {
		if err := r.processClass(ci, dv); err != nil {
			if r.has(FlagIgnoreReadException) {
				r.diags.Warn(ci, "", 0, dexio.DiagClassSkipped, "class #%d skipped: %v", ci, err)
				errs = multierror.Append(errs, err)
				continue
			}
			return err
		}
	}
	return errs.ErrorOrNil()
}
