package dex

import (
	"encoding/binary"
	"testing"
)

type recordingAnnotationVisitor struct {
	names  []string
	values []Value
	ended  bool
}

func (v *recordingAnnotationVisitor) Visit(name string, value Value) {
	v.names = append(v.names, name)
	v.values = append(v.values, value)
}
func (v *recordingAnnotationVisitor) VisitEnd() { v.ended = true }

// buildAnnotationTrailer lays out an annotations_directory_item pointing at
// a one-entry annotation_set_item pointing at a single annotation_item
// carrying one boolean(true) element, all referencing type/string index 0
// (the only entries buildMinimalDex populates).
func buildAnnotationTrailer(trailerOff int) []byte {
	trailer := make([]byte, 29)
	binary.LittleEndian.PutUint32(trailer[0:], uint32(trailerOff+16)) // class_annotations_off
	binary.LittleEndian.PutUint32(trailer[4:], 0)                     // fields_size
	binary.LittleEndian.PutUint32(trailer[8:], 0)                     // methods_size
	binary.LittleEndian.PutUint32(trailer[12:], 0)                    // parameters_size

	binary.LittleEndian.PutUint32(trailer[16:], 1)                     // annotation_set size
	binary.LittleEndian.PutUint32(trailer[20:], uint32(trailerOff+24)) // -> annotation_item

	trailer[24] = 0x00 // VISIBILITY_BUILD
	trailer[25] = 0x00 // type_idx (ULEB128) = 0
	trailer[26] = 0x01 // size (ULEB128) = 1
	trailer[27] = 0x00 // name_idx (ULEB128) = 0
	trailer[28] = byte(evBoolean) | (1 << 5)
	return trailer
}

func TestReadAnnotationsDirectory_ZeroOffsetIsEmpty(t *testing.T) {
	image := buildMinimalDex(t, "Lfoo;")
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	dir, err := r.readAnnotationsDirectory(0)
	if err != nil {
		t.Fatalf("readAnnotationsDirectory: %v", err)
	}
	if dir.classAnnotationsOff != 0 || dir.fieldAnnotations != nil || dir.methodAnnotations != nil {
		t.Errorf("readAnnotationsDirectory(0) = %+v, want zero value", dir)
	}
}

func TestReadAnnotationsDirectoryAndDispatchSet(t *testing.T) {
	base := buildMinimalDex(t, "Lfoo;")
	trailerOff := len(base)
	image := append(base, buildAnnotationTrailer(trailerOff)...)

	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	dir, err := r.readAnnotationsDirectory(uint32(trailerOff))
	if err != nil {
		t.Fatalf("readAnnotationsDirectory: %v", err)
	}
	if dir.classAnnotationsOff != uint32(trailerOff+16) {
		t.Fatalf("classAnnotationsOff = %d, want %d", dir.classAnnotationsOff, trailerOff+16)
	}

	var gotType string
	var gotVis Visibility
	av := &recordingAnnotationVisitor{}
	err = r.dispatchAnnotationSet(dir.classAnnotationsOff, func(typ string, vis Visibility) DexAnnotationVisitor {
		gotType, gotVis = typ, vis
		return av
	})
	if err != nil {
		t.Fatalf("dispatchAnnotationSet: %v", err)
	}
	if gotType != "Lfoo;" || gotVis != Visibility(0) {
		t.Errorf("factory called with (%q, %v), want (\"Lfoo;\", 0)", gotType, gotVis)
	}
	if len(av.names) != 1 || av.names[0] != "Lfoo;" {
		t.Errorf("Visit names = %v, want [Lfoo;]", av.names)
	}
	if len(av.values) != 1 || av.values[0].Tag != ValBool || !av.values[0].Bool {
		t.Errorf("Visit values = %v, want a single true Bool", av.values)
	}
	if !av.ended {
		t.Error("expected VisitEnd on the annotation visitor")
	}
}

func TestDispatchAnnotationSet_NilFactorySkipsElements(t *testing.T) {
	base := buildMinimalDex(t, "Lfoo;")
	trailerOff := len(base)
	image := append(base, buildAnnotationTrailer(trailerOff)...)

	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	dir, err := r.readAnnotationsDirectory(uint32(trailerOff))
	if err != nil {
		t.Fatalf("readAnnotationsDirectory: %v", err)
	}
	called := false
	err = r.dispatchAnnotationSet(dir.classAnnotationsOff, func(typ string, vis Visibility) DexAnnotationVisitor {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("dispatchAnnotationSet: %v", err)
	}
	if !called {
		t.Error("expected the factory to be invoked even though it returns nil")
	}
}

func TestDispatchAnnotationSet_ZeroOffsetIsNoop(t *testing.T) {
	image := buildMinimalDex(t, "Lfoo;")
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	called := false
	err = r.dispatchAnnotationSet(0, func(typ string, vis Visibility) DexAnnotationVisitor {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("dispatchAnnotationSet(0): %v", err)
	}
	if called {
		t.Error("factory must not be invoked for offset 0")
	}
}
