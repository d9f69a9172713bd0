package docstring_test

import (
	"testing"

	"github.com/pycoding/pycoding/internal/domain/docstring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchMethod() docstring.Function {
	return docstring.Function{
		Name: "fetch",
		Kind: docstring.KindFunction,
		Params: []docstring.Param{
			{Name: "self"},
			{Name: "url", Annotation: "str"},
			{Name: "timeout", Default: "30"},
			{Name: "args", Star: 1},
			{Name: "kwargs", Star: 2},
		},
		Returns:    "dict",
		Decorators: []string{"staticmethod", "retry"},
		IsMethod:   true,
		Raises:     []string{"ValueError"},
	}
}

func TestRender_Google(t *testing.T) {
	want := `    """About *fetch*.

    Args:
        url (str): ...
        timeout (int,optional): ... DEFAULT: 30
        *args (...,optional): ... VARARGS

    Keyword Args:
        **kwargs (...,optional): ... KEYWORD VARARGS

    Raises:
        ValueError: ...

    Returns:
        dict: ...

    Notes:
        * Decorators Used: retry
    """
`
	assert.Equal(t, want, docstring.Render(fetchMethod(), docstring.StyleGoogle, "    "))
}

func TestRender_Numpy(t *testing.T) {
	want := `"""About *fetch*.

Parameters
----------
url : str
    ...
timeout : int,optional
    ... DEFAULT: 30
*args : ...,optional
    ... VARARGS
**kwargs : ...,optional
    ... KEYWORD VARARGS

Raises
------
ValueError
    ...

Returns
-------
dict
    ...

Notes
-----
    * Decorators Used: retry
"""
`
	assert.Equal(t, want, docstring.Render(fetchMethod(), docstring.StyleNumpy, ""))
}

func TestRender_ReST(t *testing.T) {
	want := `"""About *fetch*.

:param url: ...
:type url: str
:param timeout: ... DEFAULT: 30
:type timeout: int
:param *args: ... VARARGS
:type *args: ...
:param **kwargs: ... KEYWORD VARARGS
:type **kwargs: ...

:raises ValueError: ...

:returns: ...
:rtype: dict

.. note::
    * Decorators Used: retry
"""
`
	assert.Equal(t, want, docstring.Render(fetchMethod(), docstring.StyleReST, ""))
}

func TestRender_MinimalFunction(t *testing.T) {
	fn := docstring.Function{Name: "main", Kind: docstring.KindFunction, Returns: "None"}
	assert.Equal(t, "\"\"\"About *main*.\n\"\"\"\n", docstring.Render(fn, docstring.StyleGoogle, ""))
}

func TestRender_Generator(t *testing.T) {
	fn := docstring.Function{
		Name:        "walk",
		Kind:        docstring.KindFunction,
		Returns:     "Iterator[tuple[str, int]]",
		IsGenerator: true,
	}
	got := docstring.Render(fn, docstring.StyleGoogle, "")
	assert.Contains(t, got, "Yields:\n    tuple[str, int]: ...")
	assert.Contains(t, got, "* Is a generator.")
	assert.NotContains(t, got, "Returns:")
}

func TestRender_Class(t *testing.T) {
	fn := docstring.Function{
		Name:       "Config",
		Kind:       docstring.KindClass,
		Bases:      []string{"Base", "Mixin"},
		Attributes: []docstring.Param{{Name: "name", Annotation: "str"}, {Name: "retries", Default: "3"}},
	}
	got := docstring.Render(fn, docstring.StyleGoogle, "    ")
	assert.Contains(t, got, "    Attributes:\n        name (str): ...\n        retries (int,optional): ... DEFAULT: 3")
	assert.Contains(t, got, "* Parent Classes: Base, Mixin")
}

func TestRender_MethodDropsCls(t *testing.T) {
	fn := docstring.Function{
		Name:     "build",
		Kind:     docstring.KindFunction,
		IsMethod: true,
		Params:   []docstring.Param{{Name: "cls"}},
	}
	got := docstring.Render(fn, docstring.StyleGoogle, "")
	assert.NotContains(t, got, "Args:")
	assert.NotContains(t, got, "cls")
}

func TestRender_FunctionKeepsSelfNamedParam(t *testing.T) {
	fn := docstring.Function{Name: "f", Kind: docstring.KindFunction, Params: []docstring.Param{{Name: "self"}}}
	assert.Contains(t, docstring.Render(fn, docstring.StyleGoogle, ""), "self (...): ...")
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]docstring.Style{
		"":       docstring.StyleGoogle,
		"Google": docstring.StyleGoogle,
		"numpy":  docstring.StyleNumpy,
		"reST":   docstring.StyleReST,
		"rest":   docstring.StyleReST,
	} {
		got, err := docstring.ParseStyle(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := docstring.ParseStyle("epytext")
	assert.Error(t, err)
}

func TestInferType(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"None":      "",
		"True":      "bool",
		"42":        "int",
		"-1":        "int",
		"0x1F":      "int",
		"3.14":      "float",
		"1e5":       "float",
		"2j":        "complex",
		`"hi"`:      "str",
		"'hi'":      "str",
		`f"{x}"`:    "str",
		`b"raw"`:    "bytes",
		"[1, 2]":    "list",
		"(1,)":      "tuple",
		"{}":        "dict",
		"{'a': 1}":  "dict",
		"{1, 2}":    "set",
		"set()":     "set",
		"dict(a=1)": "dict",
		"compute()": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, docstring.InferType(in), "value %q", in)
	}
}
