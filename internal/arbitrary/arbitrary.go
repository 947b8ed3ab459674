// Package arbitrary synthesizes values of (almost) any Go type from a finite
// entropy source. It is the support layer behind funfact's Draw: facts that
// need to resample a subject hand the subject's type here, and a fresh value
// is filled in field by field from the remaining entropy bytes.
//
// Types that cannot be filled structurally (interface-typed values, structs
// whose validity depends on which "variant" fields are set) implement
// [Interface] to take over their own construction.
package arbitrary

import (
	"fmt"
	"reflect"
)

// Source provides the entropy draws used to fill values. Every method fails
// once the underlying buffer cannot cover the request.
type Source interface {
	// Intn draws an integer in [0, n). n <= 0 yields 0.
	Intn(n int) (int, error)
	// Uint64 draws a full-width unsigned integer.
	Uint64() (uint64, error)
	// Bool draws a single bit.
	Bool() (bool, error)
	// Float64 draws a value in [0, 1].
	Float64() (float64, error)
	// Bytes draws n raw bytes.
	Bytes(n int) ([]byte, error)
}

// Interface is implemented by types that construct themselves from entropy.
// The method is called on a pointer to a zero value and fills it in place.
// It takes priority over structural synthesis.
type Interface interface {
	Arbitrary(src Source) error
}

// MaxDepth bounds recursion into nested structures. Pointers, slices and
// maps below this depth come out empty rather than growing without bound.
const MaxDepth = 8

const (
	maxSliceLen  = 8
	maxMapLen    = 4
	maxStringLen = 16
)

const stringAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

var (
	interfaceType = reflect.TypeOf((*Interface)(nil)).Elem()
	byteType      = reflect.TypeOf(byte(0))
)

// Value synthesizes a value of type t from src.
func Value(t reflect.Type, src Source) (reflect.Value, error) {
	return value(t, src, 0)
}

func value(t reflect.Type, src Source, depth int) (reflect.Value, error) {
	if reflect.PointerTo(t).Implements(interfaceType) {
		pv := reflect.New(t)
		if err := pv.Interface().(Interface).Arbitrary(src); err != nil {
			return reflect.Value{}, err
		}
		return pv.Elem(), nil
	}
	if depth > MaxDepth {
		return reflect.Zero(t), nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		b, err := src.Bool()
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		u, err := src.Uint64()
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetInt(truncInt(u, t.Bits()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := src.Uint64()
		if err != nil {
			return reflect.Value{}, err
		}
		if t.Bits() < 64 {
			u &= 1<<uint(t.Bits()) - 1
		}
		v.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := src.Float64()
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetFloat(f)

	case reflect.String:
		s, err := str(src)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetString(s)

	case reflect.Slice:
		n, err := src.Intn(maxSliceLen + 1)
		if err != nil {
			return reflect.Value{}, err
		}
		if t.Elem() == byteType {
			raw, err := src.Bytes(n)
			if err != nil {
				return reflect.Value{}, err
			}
			v.Set(reflect.ValueOf(raw).Convert(t))
			break
		}
		v.Set(reflect.MakeSlice(t, n, n))
		for i := 0; i < n; i++ {
			ev, err := value(t.Elem(), src, depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			v.Index(i).Set(ev)
		}

	case reflect.Array:
		if t.Elem() == byteType {
			raw, err := src.Bytes(t.Len())
			if err != nil {
				return reflect.Value{}, err
			}
			reflect.Copy(v, reflect.ValueOf(raw))
			break
		}
		for i := 0; i < t.Len(); i++ {
			ev, err := value(t.Elem(), src, depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			v.Index(i).Set(ev)
		}

	case reflect.Map:
		n, err := src.Intn(maxMapLen + 1)
		if err != nil {
			return reflect.Value{}, err
		}
		v.Set(reflect.MakeMapWithSize(t, n))
		for i := 0; i < n; i++ {
			kv, err := value(t.Key(), src, depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			ev, err := value(t.Elem(), src, depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			v.SetMapIndex(kv, ev)
		}

	case reflect.Pointer:
		present, err := src.Bool()
		if err != nil {
			return reflect.Value{}, err
		}
		if !present {
			break // nil
		}
		ev, err := value(t.Elem(), src, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		pv := reflect.New(t.Elem())
		pv.Elem().Set(ev)
		v.Set(pv.Convert(t))

	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fv, err := value(f.Type, src, depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			v.Field(i).Set(fv)
		}

	default:
		// Chan, Func, Interface, Complex, UnsafePointer. Types built from
		// these can still opt in via the Interface hook.
		return reflect.Value{}, fmt.Errorf("arbitrary: cannot synthesize %s values of type %s", t.Kind(), t)
	}
	return v, nil
}

// truncInt reinterprets the low `bits` of u as a signed integer, so that the
// result always fits the destination width.
func truncInt(u uint64, bits int) int64 {
	switch bits {
	case 8:
		return int64(int8(u))
	case 16:
		return int64(int16(u))
	case 32:
		return int64(int32(u))
	default:
		return int64(u)
	}
}

func str(src Source) (string, error) {
	n, err := src.Intn(maxStringLen + 1)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	for i := range buf {
		c, err := src.Intn(len(stringAlphabet))
		if err != nil {
			return "", err
		}
		buf[i] = stringAlphabet[c]
	}
	return string(buf), nil
}
