package dex

import "dxread/internal/dexio"

// annotationDirectory is the parsed annotations_directory_item for one
// class: the class-level annotation set offset plus three index→offset
// maps used while walking that class's fields and methods (§4.6).
type annotationDirectory struct {
	classAnnotationsOff uint32
	fieldAnnotations    map[uint32]uint32 // field_idx -> annotation_set_off
	methodAnnotations   map[uint32]uint32 // method_idx -> annotation_set_off
	paramAnnotations    map[uint32]uint32 // method_idx -> annotation_set_ref_list off
}

func (r *Reader) readAnnotationsDirectory(off uint32) (*annotationDirectory, error) {
	dir := &annotationDirectory{}
	if off == 0 {
		return dir, nil
	}
	c := r.h.image.Cursor(int(off))
	classAnnOff, err := c.UInt()
	if err != nil {
		return nil, err
	}
	dir.classAnnotationsOff = classAnnOff

	fieldsSize, err := c.UInt()
	if err != nil {
		return nil, err
	}
	methodsSize, err := c.UInt()
	if err != nil {
		return nil, err
	}
	paramsSize, err := c.UInt()
	if err != nil {
		return nil, err
	}

	if fieldsSize > 0 {
		dir.fieldAnnotations = make(map[uint32]uint32, fieldsSize)
		for i := uint32(0); i < fieldsSize; i++ {
			fieldIdx, err := c.UInt()
			if err != nil {
				return nil, err
			}
			annOff, err := c.UInt()
			if err != nil {
				return nil, err
			}
			dir.fieldAnnotations[fieldIdx] = annOff
		}
	}
	if methodsSize > 0 {
		dir.methodAnnotations = make(map[uint32]uint32, methodsSize)
		for i := uint32(0); i < methodsSize; i++ {
			methodIdx, err := c.UInt()
			if err != nil {
				return nil, err
			}
			annOff, err := c.UInt()
			if err != nil {
				return nil, err
			}
			dir.methodAnnotations[methodIdx] = annOff
		}
	}
	if paramsSize > 0 {
		dir.paramAnnotations = make(map[uint32]uint32, paramsSize)
		for i := uint32(0); i < paramsSize; i++ {
			methodIdx, err := c.UInt()
			if err != nil {
				return nil, err
			}
			listOff, err := c.UInt()
			if err != nil {
				return nil, err
			}
			dir.paramAnnotations[methodIdx] = listOff
		}
	}
	return dir, nil
}

// annotationFactory obtains a DexAnnotationVisitor for one annotation
// found in a set, or nil to skip it.
type annotationFactory func(annotationType string, vis Visibility) DexAnnotationVisitor

// dispatchAnnotationSet decodes an annotation_set_item at off and
// dispatches each entry to factory. An entry whose factory call returns
// nil has its elements left undecoded — only the visibility byte and
// type/size header are read before the skip decision, so a null visitor
// never pays for element decoding.
func (r *Reader) dispatchAnnotationSet(off uint32, factory annotationFactory) error {
	if off == 0 {
		return nil
	}
	c := r.h.image.Cursor(int(off))
	size, err := c.UInt()
	if err != nil {
		return err
	}
	for i := uint32(0); i < size; i++ {
		annOff, err := c.UInt()
		if err != nil {
			return err
		}
		if err := r.dispatchAnnotationItem(annOff, factory); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) dispatchAnnotationItem(off uint32, factory annotationFactory) error {
	ic := r.h.image.Cursor(int(off))
	visByte, err := ic.UByte()
	if err != nil {
		return err
	}
	vis := Visibility(visByte)

	typeIdx, size, err := readAnnotationHeader(ic)
	if err != nil {
		return err
	}
	typ, err := r.pool.getType(int32(typeIdx))
	if err != nil {
		return err
	}

	av := factory(typ, vis)
	if av == nil {
		return nil
	}
	for i := uint32(0); i < size; i++ {
		nameIdx, err := ic.ULEB128()
		if err != nil {
			return err
		}
		name, err := r.pool.getString(int32(nameIdx))
		if err != nil {
			return err
		}
		val, err := r.pool.decodeValue(ic)
		if err != nil {
			return err
		}
		av.Visit(name, val)
	}
	av.VisitEnd()
	return nil
}

// readAnnotationHeader reads the (type_idx, size) prefix shared by
// encoded_annotation and annotation_item, without decoding any elements.
func readAnnotationHeader(c *dexio.Cursor) (typeIdx, size uint32, err error) {
	typeIdx, err = c.ULEB128()
	if err != nil {
		return 0, 0, err
	}
	size, err = c.ULEB128()
	return typeIdx, size, err
}

// dispatchParameterAnnotations decodes an annotation_set_ref_list at off
// and dispatches each non-empty slot to mv.VisitParameterAnnotation,
// per §4.6. Offset 0 for a given parameter means "no annotations" and is
// skipped entirely — no visitor call is made for it.
func (r *Reader) dispatchParameterAnnotations(mv DexMethodVisitor, off uint32) error {
	if off == 0 {
		return nil
	}
	c := r.h.image.Cursor(int(off))
	size, err := c.UInt()
	if err != nil {
		return err
	}
	for i := uint32(0); i < size; i++ {
		setOff, err := c.UInt()
		if err != nil {
			return err
		}
		if setOff == 0 {
			continue
		}
		idx := i
		if err := r.dispatchAnnotationSet(setOff, func(typ string, vis Visibility) DexAnnotationVisitor {
			return mv.VisitParameterAnnotation(int(idx))
		}); err != nil {
			return err
		}
	}
	return nil
}
