package dex

import (
	"dxread/internal/dexio"
)

// walkClassData decodes the class_data_item for one class and drives the
// field/method visitors, per §4.5. The four member groups are each
// delta-encoded: every entry only carries how far its index moved past
// the previous entry in the same group, so a running index has to be
// carried across the loop.
func (r *Reader) walkClassData(ci int, cv DexClassVisitor, def ClassDef, dir *annotationDirectory) error {
	if def.ClassDataOff == 0 {
		return nil
	}
	c := r.h.image.Cursor(int(def.ClassDataOff))

	nStatic, err := c.ULEB128()
	if err != nil {
		return err
	}
	nInstance, err := c.ULEB128()
	if err != nil {
		return err
	}
	nDirect, err := c.ULEB128()
	if err != nil {
		return err
	}
	nVirtual, err := c.ULEB128()
	if err != nil {
		return err
	}

	staticValues, err := r.pool.decodeStaticValues(def.StaticValuesOff)
	if err != nil {
		return err
	}
	if r.has(FlagSkipFieldConstant) {
		staticValues = nil
	}

	if err := r.walkFields(ci, cv, c, int(nStatic), true, staticValues, dir); err != nil {
		return err
	}
	if err := r.walkFields(ci, cv, c, int(nInstance), false, nil, dir); err != nil {
		return err
	}

	seenDirect := make(map[uint32]bool, nDirect)
	if err := r.walkMethods(ci, cv, c, int(nDirect), dir, seenDirect); err != nil {
		return err
	}
	seenVirtual := make(map[uint32]bool, nVirtual)
	if err := r.walkMethods(ci, cv, c, int(nVirtual), dir, seenVirtual); err != nil {
		return err
	}
	return nil
}

func (r *Reader) walkFields(ci int, cv DexClassVisitor, c *dexio.Cursor, count int, static bool, staticValues []Value, dir *annotationDirectory) error {
	lastIdx := uint32(0)
	for i := 0; i < count; i++ {
		diff, err := c.ULEB128()
		if err != nil {
			return err
		}
		lastIdx += diff
		accessFlags, err := c.ULEB128()
		if err != nil {
			return err
		}
		field, err := r.pool.getField(lastIdx)
		if err != nil {
			return err
		}

		var constant *Value
		if static && i < len(staticValues) {
			v := staticValues[i]
			constant = &v
		}

		fv := cv.VisitField(AccessFlags(accessFlags), field, constant)
		if fv == nil {
			continue
		}
		if !r.has(FlagSkipAnnotation) && dir.fieldAnnotations != nil {
			if annOff, ok := dir.fieldAnnotations[lastIdx]; ok {
				if err := r.dispatchAnnotationSet(annOff, func(typ string, vis Visibility) DexAnnotationVisitor {
					return fv.VisitAnnotation(typ, vis)
				}); err != nil {
					return err
				}
			}
		}
		fv.VisitEnd()
	}
	return nil
}

func (r *Reader) walkMethods(ci int, cv DexClassVisitor, c *dexio.Cursor, count int, dir *annotationDirectory, seen map[uint32]bool) error {
	lastIdx := uint32(0)
	for i := 0; i < count; i++ {
		diff, err := c.ULEB128()
		if err != nil {
			return err
		}
		lastIdx += diff
		accessFlags, err := c.ULEB128()
		if err != nil {
			return err
		}
		codeOff, err := c.ULEB128()
		if err != nil {
			return err
		}

		if seen[lastIdx] {
			if !r.has(FlagKeepAllMethods) {
				r.diags.Warn(ci, "", 0, dexio.DiagDupMethod, "duplicate method_idx %d, skipping", lastIdx)
				continue
			}
			r.diags.Warn(ci, "", 0, dexio.DiagDupMethod, "duplicate method_idx %d, kept (KeepAllMethods)", lastIdx)
		}
		seen[lastIdx] = true

		method, err := r.pool.getMethod(lastIdx)
		if err != nil {
			return err
		}
		af := AccessFlags(accessFlags)
		if (method.Name == "<init>" || method.Name == "<clinit>") && af&AccConstructor == 0 {
			r.diags.Warn(ci, method.String(), 0, dexio.DiagMissingCtorFlag, "%s missing ACC_CONSTRUCTOR", method.Name)
		}

		mv := cv.VisitMethod(af, method)
		if mv == nil {
			continue
		}
		if !r.has(FlagSkipAnnotation) && dir.methodAnnotations != nil {
			if annOff, ok := dir.methodAnnotations[lastIdx]; ok {
				if err := r.dispatchAnnotationSet(annOff, func(typ string, vis Visibility) DexAnnotationVisitor {
					return mv.VisitAnnotation(typ, vis)
				}); err != nil {
					return err
				}
			}
			if dir.paramAnnotations != nil {
				if listOff, ok := dir.paramAnnotations[lastIdx]; ok {
					if err := r.dispatchParameterAnnotations(mv, listOff); err != nil {
						return err
					}
				}
			}
		}

		decodeCode := !r.has(FlagSkipCode) || (method.Name == "<clinit>" && r.has(FlagKeepClinit))
		if codeOff != 0 && decodeCode {
			isStatic := af&AccStatic != 0
			if err := r.walkCode(ci, mv, method, isStatic, uint32(codeOff)); err != nil {
				return &MethodError{Method: method, CodeOffset: int(codeOff), Err: err}
			}
		}
		mv.VisitEnd()
	}
	return nil
}
