package udf

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// SQLType is the declared type of a parameter or result.
type SQLType string

const (
	TypeVarchar SQLType = "VARCHAR"
	TypeChar    SQLType = "CHAR"
	TypeClob    SQLType = "CLOB"
	TypeInteger SQLType = "INTEGER"
	TypeBigInt  SQLType = "BIGINT"
)

// Param describes one function parameter.
type Param struct {
	Name string
	Type SQLType
}

// Value is a generic argument or result as exchanged with the host.
type Value struct {
	Type  SQLType
	Str   string
	Bytes []byte
	Int   int64
	Null  bool
}

func (v Value) ind() NullInd {
	if v.Null {
		return Null
	}
	return NotNull
}

func (v Value) varchar() Varchar { return Varchar{Value: v.Str, Ind: v.ind()} }
func (v Value) char() Char       { return Char{Value: v.Str, Ind: v.ind()} }

func (v Value) clob() Clob {
	data := v.Bytes
	if data == nil && v.Str != "" {
		data = []byte(v.Str)
	}
	return Clob{Data: data, Ind: v.ind()}
}

func fromInt(r IntResult) Value {
	return Value{Type: TypeInteger, Int: int64(r.Value), Null: r.Ind.IsNull()}
}

func fromBigInt(r BigIntResult) Value {
	return Value{Type: TypeBigInt, Int: r.Value, Null: r.Ind.IsNull()}
}

// String renders the value the way a query result would show it.
func (v Value) String() string {
	if v.Null {
		return "NULL"
	}
	switch v.Type {
	case TypeInteger, TypeBigInt:
		return fmt.Sprintf("%d", v.Int)
	case TypeClob:
		if v.Bytes != nil {
			return string(v.Bytes)
		}
	}
	return v.Str
}

type invokeFunc func(ctx context.Context, a *Adapter, args []Value) Value

// Function is one external function exposed to the host.
type Function struct {
	// Name is the SQL function name
	Name string
	// EntryPoint is the symbol the host binds the function to
	EntryPoint  string
	Description string
	Params      []Param
	Returns     SQLType

	invoke invokeFunc
}

// Signature renders the function as NAME(PARAM TYPE, ...) RETURNS TYPE.
func (f Function) Signature() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = fmt.Sprintf("%s %s", p.Name, p.Type)
	}
	return fmt.Sprintf("%s(%s) RETURNS %s", f.Name, strings.Join(parts, ", "), f.Returns)
}

// Invoke runs the function with positional arguments.
func (f Function) Invoke(ctx context.Context, a *Adapter, args []Value) (Value, error) {
	if len(args) != len(f.Params) {
		return Value{}, fmt.Errorf("%s expects %d arguments, got %d", f.Name, len(f.Params), len(args))
	}
	return f.invoke(ctx, a, args), nil
}

var functions = []Function{
	{
		Name:        "PATH_EXISTS",
		EntryPoint:  "sql_path_exists",
		Description: "0 if the path exists",
		Params:      []Param{{"PATH", TypeVarchar}},
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.PathExists(args[0].varchar()))
		},
	},
	{
		Name:        "PATH_READABLE_WRITABLE",
		EntryPoint:  "sql_path_readable_writable",
		Description: "0 if the path is, or could be made, readable and writable",
		Params:      []Param{{"PATH", TypeVarchar}},
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.PathReadableWritable(args[0].varchar()))
		},
	},
	{
		Name:        "COPY_FILE",
		EntryPoint:  "sql_copy_file",
		Description: "writes (w) or appends (a) the source file to the target file",
		Params:      []Param{{"SOURCE_PATH", TypeVarchar}, {"TARGET_PATH", TypeVarchar}, {"MODE", TypeChar}},
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.CopyFile(args[0].varchar(), args[1].varchar(), args[2].char()))
		},
	},
	{
		Name:        "CLOB_TO_FILE",
		EntryPoint:  "sql_clob_to_file",
		Description: "writes (w) or appends (a) a CLOB to a file",
		Params:      []Param{{"PATH", TypeVarchar}, {"MODE", TypeChar}, {"IN_CLOB", TypeClob}},
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.ClobToFile(args[0].varchar(), args[1].char(), args[2].clob()))
		},
	},
	{
		Name:        "MAKE_DIRECTORY",
		EntryPoint:  "sql_make_directory",
		Description: "creates a directory with open permissions",
		Params:      []Param{{"PATH", TypeVarchar}},
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.MakeDirectory(args[0].varchar()))
		},
	},
	{
		Name:        "REMOVE_DIRECTORY",
		EntryPoint:  "sql_remove_directory",
		Description: "removes a directory tree or a single file",
		Params:      []Param{{"PATH", TypeVarchar}},
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.RemoveDirectory(args[0].varchar()))
		},
	},
	{
		Name:        "MOVE_DIRECTORY",
		EntryPoint:  "sql_move_directory",
		Description: "renames a directory",
		Params:      []Param{{"SOURCE_PATH", TypeVarchar}, {"TARGET_PATH", TypeVarchar}},
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.MoveDirectory(args[0].varchar(), args[1].varchar()))
		},
	},
	{
		Name:        "SIZEOF_DIRECTORY",
		EntryPoint:  "sql_sizeof_directory",
		Description: "recursive size in bytes, directory entries included",
		Params:      []Param{{"PATH", TypeVarchar}},
		Returns:     TypeBigInt,
		invoke: func(_ context.Context, a *Adapter, args []Value) Value {
			return fromBigInt(a.SizeofDirectory(args[0].varchar()))
		},
	},
	{
		Name:        "IS_WINDOWS",
		EntryPoint:  "sql_is_windows",
		Description: "1 on Windows, 0 elsewhere",
		Returns:     TypeInteger,
		invoke: func(_ context.Context, a *Adapter, _ []Value) Value {
			return fromInt(a.IsWindows())
		},
	},
	{
		Name:        "SYSTEM_CALL",
		EntryPoint:  "sql_system_call",
		Description: "runs a command through the OS shell; the string is executed verbatim",
		Params:      []Param{{"COMMAND", TypeVarchar}},
		Returns:     TypeInteger,
		invoke: func(ctx context.Context, a *Adapter, args []Value) Value {
			return fromInt(a.SystemCall(ctx, args[0].varchar()))
		},
	},
}

var byName = func() map[string]Function {
	m := make(map[string]Function, len(functions))
	for _, f := range functions {
		m[f.Name] = f
	}
	return m
}()

// Functions returns every registered function, sorted by name.
func Functions() []Function {
	out := make([]Function, len(functions))
	copy(out, functions)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a function by SQL name, case-insensitively. Dashes are
// accepted in place of underscores.
func Lookup(name string) (Function, bool) {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	f, ok := byName[key]
	return f, ok
}
