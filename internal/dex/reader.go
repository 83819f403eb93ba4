package dex

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"dxread/internal/dexio"
)

// Config bits, one per behavior the orchestrator can toggle for a Pipe
// run, per §4.10 and §6.
const (
	FlagSkipDebug           uint32 = 1 << 0
	FlagSkipCode            uint32 = 1 << 2
	FlagSkipAnnotation      uint32 = 1 << 3
	FlagSkipFieldConstant   uint32 = 1 << 4
	FlagIgnoreReadException uint32 = 1 << 5
	FlagKeepAllMethods      uint32 = 1 << 6
	FlagKeepClinit          uint32 = 1 << 7
	FlagEnableDebugLog      uint32 = 1 << 16
)

// Config configures a Reader.
type Config struct {
	Flags uint32
	// Logger receives non-fatal WARN diagnostics in addition to their
	// accumulation in Reader.Diagnostics. Nil disables logging even if
	// FlagEnableDebugLog is set.
	Logger *logrus.Logger
	// CacheSize bounds the string/type LRU caches. Zero picks a default.
	CacheSize int
}

// Reader parses one DEX image's header and pools once, then can Pipe it
// through any number of DexFileVisitor implementations. A Reader is not
// safe for concurrent Pipe calls — its pool caches are unsynchronized —
// but distinct Readers over the same or different images never interfere,
// per §5.
type Reader struct {
	h     *header
	pool  *pool
	diags *dexio.Diags
	flags uint32
}

// NewReader validates image's header and builds its ID-table pool. It
// does not touch class bodies; those are only read during Pipe.
func NewReader(image []byte, cfg Config) (*Reader, error) {
	buf := dexio.NewBuffer(image)

	var entry *logrus.Entry
	if cfg.Logger != nil {
		entry = logrus.NewEntry(cfg.Logger)
	}
	diags := dexio.NewDiags(entry)

	h, err := parseHeader(buf, diags)
	if err != nil {
		return nil, err
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 512
	}
	return &Reader{h: h, pool: newPool(h, cacheSize), diags: diags, flags: cfg.Flags}, nil
}

func (r *Reader) has(flag uint32) bool { return r.flags&flag != 0 }

// Diagnostics returns every non-fatal warning accumulated since NewReader.
func (r *Reader) Diagnostics() []dexio.Diag { return r.diags.Items() }

// ClassCount returns class_defs_size.
func (r *Reader) ClassCount() int { return r.h.classDefs.count }

// Pipe drives dv through every class_def_item in class_defs order,
// per §4.10. With FlagIgnoreReadException set, a class that fails to
// decode is recorded as a warning and skipped rather than aborting the
// whole run; the accumulated failures are returned together as a
// *multierror.Error once the run completes.
func (r *Reader) Pipe(dv DexFileVisitor) error {
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
	dv.VisitEnd()
	if errs != nil {
		return errs
	}
	return nil
}

func (r *Reader) processClass(ci int, dv DexFileVisitor) error {
	def, err := r.readClassDefRecord(ci)
	if err != nil {
		return &ClassError{ClassIndex: ci, ClassName: "?", Err: err}
	}
	wrap := func(err error) error {
		if err == nil {
			return nil
		}
		return &ClassError{ClassIndex: ci, ClassName: def.Type, Err: err}
	}

	cv := dv.Visit(def.AccessFlags, def.Type, def.Super, def.Interfaces)
	if cv == nil {
		return nil
	}

	if !r.has(FlagSkipDebug) && def.SourceFile != "" {
		cv.VisitSource(def.SourceFile)
	}

	dir, err := r.readAnnotationsDirectory(def.AnnotationsOff)
	if err != nil {
		return wrap(err)
	}
	if !r.has(FlagSkipAnnotation) && dir.classAnnotationsOff != 0 {
		err := r.dispatchAnnotationSet(dir.classAnnotationsOff, func(typ string, vis Visibility) DexAnnotationVisitor {
			return cv.VisitAnnotation(typ, vis)
		})
		if err != nil {
			return wrap(err)
		}
	}

	if err := r.walkClassData(ci, cv, def, dir); err != nil {
		return wrap(err)
	}

	cv.VisitEnd()
	return nil
}

// readClassDefRecord decodes the 32-byte class_def_item at index ci and
// resolves its name/super/interfaces/source-file through the pool.
func (r *Reader) readClassDefRecord(ci int) (ClassDef, error) {
	if ci >= r.h.classDefs.count {
		return ClassDef{}, &dexio.Error{Kind: dexio.KindBounds, Msg: "class index out of range"}
	}
	c := r.h.image.Cursor(r.h.classDefs.offset + ci*strideClassDef)

	classIdx, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}
	accessFlags, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}
	superclassIdx, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}
	interfacesOff, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}
	sourceFileIdx, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}
	annotationsOff, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}
	classDataOff, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}
	staticValuesOff, err := c.UInt()
	if err != nil {
		return ClassDef{}, err
	}

	name, err := r.pool.getType(int32(classIdx))
	if err != nil {
		return ClassDef{}, err
	}
	super, err := r.pool.getType(int32(superclassIdx))
	if err != nil {
		return ClassDef{}, err
	}
	ifaces, err := r.pool.getTypeList(interfacesOff)
	if err != nil {
		return ClassDef{}, err
	}
	sourceFile, err := r.pool.getString(int32(sourceFileIdx))
	if err != nil {
		return ClassDef{}, err
	}

	return ClassDef{
		AccessFlags:     AccessFlags(accessFlags),
		Type:            name,
		Super:           super,
		Interfaces:      ifaces,
		SourceFile:      sourceFile,
		AnnotationsOff:  annotationsOff,
		ClassDataOff:    classDataOff,
		StaticValuesOff: staticValuesOff,
	}, nil
}
