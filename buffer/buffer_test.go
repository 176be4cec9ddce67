package buffer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendableSizeDataConsistency(t *testing.T) {
	a := NewAppendable()
	require.Equal(t, 0, a.Size())

	require.NoError(t, a.Append(0x01))
	require.NoError(t, a.AppendBytes([]byte{0x02, 0x03}))

	require.Equal(t, 3, a.Size())
	require.Equal(t, []byte{0x01, 0x02, 0x03}, a.Data())

	a.Clear()
	require.Equal(t, 0, a.Size())
	require.Empty(t, a.Data())
}

func TestExecutableEquivalenceFromAppendable(t *testing.T) {
	a := NewAppendable()
	require.NoError(t, a.AppendBytes([]byte{0x55, 0x48, 0x89, 0xE5, 0xC3}))

	exe, err := NewExecutableFromSink(a)
	require.NoError(t, err)
	defer exe.Close()

	require.Equal(t, a.Data(), exe.Data())
	require.GreaterOrEqual(t, exe.Capacity(), pageSize)
}

func TestExecutableLifecycleGrow(t *testing.T) {
	exe, err := NewExecutable(1)
	require.NoError(t, err)
	defer exe.Close()

	require.GreaterOrEqual(t, exe.Capacity(), pageSize)

	payload := make([]byte, pageSize+1)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, exe.AppendBytes(payload))

	require.Equal(t, len(payload), exe.Size())
	require.Equal(t, payload, exe.Data())
}

func TestPersistentSizeTracksStreamOffset(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "machgo-persistent-*")
	require.NoError(t, err)
	defer f.Close()

	p, err := NewPersistent(f)
	require.NoError(t, err)
	require.Equal(t, 0, p.Size())

	require.NoError(t, p.AppendBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	require.Equal(t, 4, p.Size())
}

func TestPersistentRejectsNilStream(t *testing.T) {
	_, err := NewPersistent(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPersistentWriteAfterCloseIsIOError(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "machgo-persistent-closed-*")
	require.NoError(t, err)

	p, err := NewPersistent(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	err = p.AppendBytes([]byte{0x01})
	require.ErrorIs(t, err, ErrIOError)
}
