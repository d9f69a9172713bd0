package testdiscovery_test

import (
	"testing"

	"github.com/pycoding/pycoding/internal/domain/testdiscovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collectOutput = `tests/test_math.py::test_add
tests/test_math.py::TestDivide::test_by_zero
tests/unit/test_io.py::TestReader::TestNested::test_read
test_root.py::test_smoke

4 tests collected in 0.02s
`

func TestParseCollectOutput_Tree(t *testing.T) {
	tree := testdiscovery.ParseCollectOutput(collectOutput)
	require.NotNil(t, tree.Root)
	assert.Equal(t, 4, tree.Count)
	assert.Equal(t, []string{"tests/test_math.py", "tests/unit/test_io.py", "test_root.py"}, tree.Files)

	tests := tree.Root.Child("tests")
	require.NotNil(t, tests)
	assert.Equal(t, "tests/", tests.File)

	math := tests.Child("test_math.py")
	require.NotNil(t, math)
	assert.Equal(t, "tests/test_math.py", math.File)
	assert.Equal(t, []string{"test_add", "TestDivide.test_by_zero"}, math.Tests)

	io := tests.Child("unit").Child("test_io.py")
	require.NotNil(t, io)
	assert.Equal(t, []string{"TestReader.TestNested.test_read"}, io.Tests)
	assert.Equal(t, "tests/unit/", tests.Child("unit").File)

	root := tree.Root.Child("test_root.py")
	require.NotNil(t, root)
	assert.Equal(t, []string{"test_smoke"}, root.Tests)
}

func TestParseCollectOutput_MergesDirectories(t *testing.T) {
	tree := testdiscovery.ParseCollectOutput("a/b/test_x.py::t1 a/c/test_y.py::t2\r\na/b/test_x.py::t3")
	a := tree.Root.Child("a")
	require.NotNil(t, a)
	assert.Len(t, tree.Root.Children, 1)
	assert.Len(t, a.Children, 2)
	assert.Equal(t, []string{"t1", "t3"}, a.Child("b").Child("test_x.py").Tests)
	assert.Equal(t, 3, tree.Count)
}

func TestParseCollectOutput_NoTests(t *testing.T) {
	tree := testdiscovery.ParseCollectOutput("\n\nno tests ran in 0.01s\n")
	assert.Equal(t, 0, tree.Count)
	assert.Empty(t, tree.Root.Children)
}

func TestContainsFile(t *testing.T) {
	assert.True(t, testdiscovery.ContainsFile(collectOutput, "tests/test_math.py"))
	assert.True(t, testdiscovery.ContainsFile(collectOutput, "/home/dev/app/tests/unit/test_io.py"))
	assert.False(t, testdiscovery.ContainsFile(collectOutput, "app/models.py"))
	assert.False(t, testdiscovery.ContainsFile(collectOutput, ""))
}

func TestFiles(t *testing.T) {
	assert.Equal(t, []string{"tests/test_math.py", "tests/unit/test_io.py", "test_root.py"},
		testdiscovery.Files(collectOutput))
}
