package dex

// tryItem is one decoded try_item: the code-unit range [StartAddr,
// StartAddr+InsnCount) it protects and where its handler list lives,
// per §4.9.
type tryItem struct {
	StartAddr  uint32
	InsnCount  uint16
	HandlerOff uint16
}

// decodeTries reads triesSize try_item records starting at triesOff.
func (r *Reader) decodeTries(triesOff int, triesSize int) ([]tryItem, error) {
	if triesSize == 0 {
		return nil, nil
	}
	c := r.h.image.Cursor(triesOff)
	out := make([]tryItem, 0, triesSize)
	for i := 0; i < triesSize; i++ {
		start, err := c.UInt()
		if err != nil {
			return nil, err
		}
		count, err := c.UShort()
		if err != nil {
			return nil, err
		}
		hOff, err := c.UShort()
		if err != nil {
			return nil, err
		}
		out = append(out, tryItem{StartAddr: start, InsnCount: count, HandlerOff: hOff})
	}
	return out, nil
}

// decodeCatchHandlers reads one encoded_catch_handler at handlersBase +
// handlerOff. A non-positive encoded size means "abs(size) typed
// handlers plus a trailing catch-all" (so 0 is a lone catch-all); a
// positive size means exactly that many typed handlers and no catch-all. A catch-all entry is represented
// with an empty Type, per §4.9.
func (r *Reader) decodeCatchHandlers(handlersBase int, handlerOff int) ([]TryCatchHandler, error) {
	c := r.h.image.Cursor(handlersBase + handlerOff)
	size, err := c.SLEB128()
	if err != nil {
		return nil, err
	}
	abs := size
	hasCatchAll := size <= 0
	if abs < 0 {
		abs = -abs
	}
	out := make([]TryCatchHandler, 0, int(abs)+1)
	for i := int32(0); i < abs; i++ {
		typeIdx, err := c.ULEB128()
		if err != nil {
			return nil, err
		}
		addr, err := c.ULEB128()
		if err != nil {
			return nil, err
		}
		typ, err := r.pool.getType(int32(typeIdx))
		if err != nil {
			return nil, err
		}
		out = append(out, TryCatchHandler{Type: typ, Handler: Label(addr)})
	}
	if hasCatchAll {
		addr, err := c.ULEB128()
		if err != nil {
			return nil, err
		}
		out = append(out, TryCatchHandler{Type: "", Handler: Label(addr)})
	}
	return out, nil
}

// handlerListBase returns the byte offset of the encoded_catch_handler_list
// that a try_item's handler_off is relative to: the position immediately
// after the try_item array in the code_item.
func handlerListBase(triesOff int, triesSize int) int {
	return triesOff + triesSize*8
}
