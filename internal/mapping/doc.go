// Package mapping reads YAML override files.
//
// An override file attaches attribute lists to types and fields without
// touching their source, e.g. for types whose files are generated or owned
// by someone else. Fragments from the file are merged after the directives
// found in the source, so they win for single-valued options.
//
// # Schema
//
//	version: "1"
//	types:
//	  - name: Struct
//	    attrs: serde(seed(Interner))
//	    fields:
//	      foo: rename("Foo")
//	      bar: [default, "skip_serializing_if(seeded.IsNone)"]
//
// attrs and each field entry take one attribute list or a sequence of them.
// The enclosing parentheses may be omitted. A type listed only here is
// processed as if its source carried the directives.
package mapping
