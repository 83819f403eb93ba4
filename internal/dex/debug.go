package dex

import (
	"fmt"

	"dxread/internal/dexio"
)

const (
	dbgEndSequence       = 0x00
	dbgAdvancePC         = 0x01
	dbgAdvanceLine       = 0x02
	dbgStartLocal        = 0x03
	dbgStartLocalExtended = 0x04
	dbgEndLocal          = 0x05
	dbgRestartLocal      = 0x06
	dbgSetPrologueEnd    = 0x07
	dbgSetEpilogueBegin  = 0x08
	dbgSetFile           = 0x09
	dbgFirstSpecial      = 0x0a
	dbgLineBase          = -4
	dbgLineRange         = 15
)

func isWideDescriptor(desc string) bool {
	return desc == "J" || desc == "D"
}

// walkDebug replays the debug-info micro-VM at debugInfoOff and drives
// dv, per §4.7. registersSize/insSize come from the enclosing code_item;
// the loop over parameter_names tracks the v-register slot of each
// parameter from them (wide types consume two registers, shifting
// everything after them), but VisitParameterName receives each name's
// position in the parameter list, not that register number.
func (r *Reader) walkDebug(dv DexDebugVisitor, debugInfoOff uint32, method Method, isStatic bool, registersSize, insSize int) error {
	c := r.h.image.Cursor(int(debugInfoOff))

	lineStart, err := c.ULEB128()
	if err != nil {
		return err
	}
	paramsSize, err := c.ULEB128()
	if err != nil {
		return err
	}

	paramReg := registersSize - insSize
	if !isStatic {
		paramReg++ // slot 0 of the ins range is "this"
	}
	for i := uint32(0); i < paramsSize; i++ {
		nameIdx, err := c.ULEB128p1()
		if err != nil {
			return err
		}
		if nameIdx != -1 {
			name, err := r.pool.getString(nameIdx)
			if err != nil {
				return err
			}
			dv.VisitParameterName(int(i), name)
		}
		width := 1
		if int(i) < len(method.Params) && isWideDescriptor(method.Params[i]) {
			width = 2
		}
		paramReg += width
	}

	lastLocalForReg := make(map[int]bool)
	address := 0
	line := int(lineStart)
	for {
		op, err := c.UByte()
		if err != nil {
			return err
		}
		if op == dbgEndSequence {
			break
		}
		switch op {
		case dbgAdvancePC:
			diff, err := c.ULEB128()
			if err != nil {
				return err
			}
			address += int(diff)
		case dbgAdvanceLine:
			diff, err := c.SLEB128()
			if err != nil {
				return err
			}
			line += int(diff)
		case dbgStartLocal, dbgStartLocalExtended:
			reg, err := c.ULEB128()
			if err != nil {
				return err
			}
			nameIdx, err := c.ULEB128p1()
			if err != nil {
				return err
			}
			typeIdx, err := c.ULEB128p1()
			if err != nil {
				return err
			}
			var sig string
			if op == dbgStartLocalExtended {
				sigIdx, err := c.ULEB128p1()
				if err != nil {
					return err
				}
				if sigIdx != -1 {
					sig, err = r.pool.getString(sigIdx)
					if err != nil {
						return err
					}
				}
			}
			var name, typ string
			if nameIdx != -1 {
				if name, err = r.pool.getString(nameIdx); err != nil {
					return err
				}
			}
			if typeIdx != -1 {
				if typ, err = r.pool.getType(typeIdx); err != nil {
					return err
				}
			}
			lastLocalForReg[int(reg)] = true
			dv.VisitStartLocal(int(reg), name, typ, sig, Label(address))
		case dbgEndLocal:
			reg, err := c.ULEB128()
			if err != nil {
				return err
			}
			dv.VisitEndLocal(int(reg), Label(address))
		case dbgRestartLocal:
			reg, err := c.ULEB128()
			if err != nil {
				return err
			}
			if !lastLocalForReg[int(reg)] {
				return &dexio.Error{
					Kind: dexio.KindBadDebug,
					Off:  int(debugInfoOff),
					Msg:  fmt.Sprintf("RESTART_LOCAL on v%d with no prior START_LOCAL", reg),
				}
			}
			dv.VisitRestartLocal(int(reg), Label(address))
		case dbgSetPrologueEnd:
			dv.VisitPrologue(Label(address))
		case dbgSetEpilogueBegin:
			dv.VisitEpilogue(Label(address))
		case dbgSetFile:
			// consumed to keep the stream aligned; no visitor hook surfaces it.
			if _, err := c.ULEB128p1(); err != nil {
				return err
			}
		default:
			adjusted := int(op) - dbgFirstSpecial
			address += adjusted / dbgLineRange
			line += dbgLineBase + adjusted%dbgLineRange
			dv.VisitLineNumber(line, Label(address))
		}
	}
	dv.VisitEnd()
	return nil
}
