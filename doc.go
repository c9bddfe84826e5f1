// Package rtype provides:
//
// - Composable runtime type descriptors (Integer, Float, String, Boolean, Date, Object, Any,
// InstanceOf, ArrayOf, Enum, Union, Shape) with Cast/IsValidType and the shared
// capability functions CanCast, IsValid, SaveCast and Compare
// - A textual descriptor grammar (String/FromString) with an injectable Cache
// - A stable error model via *Error and Issues (code, JSON Pointer, message)
// - TypeScript and JSON Schema projections
// - Typed records (package model) and net/http body casting (package middleware)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place codecs under codec/, payload decoding under source/ and the CLI under cmd/rtype.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	t, err := rtype.FromString(`shape({"id":"integer","tags?":"string[]"})`)
//	v, err := t.Cast(map[string]any{"id": "42"})
//	ok, err := rtype.IsValid(t, v)
//
//	doc, err := source.JSON(data, source.DefaultOptions())
//	v, err = t.Cast(doc)
package rtype
