package rift

import "github.com/sycomix/rift/ir"

// Public type aliases for ir types used in the project-level API. These
// are Go type aliases (=), identical to the ir types at compile time;
// callers working only at the project level need not import ir directly.

type Project = ir.Project
type File = ir.File
type Symbol = ir.Symbol
type Import = ir.Import
type Code = ir.Code
type CodeEdit = ir.CodeEdit
type Substring = ir.Substring
type Language = ir.Language
type Scope = ir.Scope
type QualifiedID = ir.QualifiedID
type Reference = ir.Reference
