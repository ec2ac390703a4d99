package event

import (
	"testing"

	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestDispatchOrderAndPayload(t *testing.T) {
	m := NewManager(logger.Discard())
	var got []string
	m.Subscribe(TypeDocumentOpened, func(e Event) bool {
		got = append(got, "first:"+e.Data.(DocumentData).Key)
		return false
	})
	m.Subscribe(TypeDocumentOpened, func(e Event) bool {
		got = append(got, "second:"+e.Data.(DocumentData).Key)
		return true
	})
	m.Subscribe(TypeDocumentSaved, func(Event) bool {
		got = append(got, "saved")
		return false
	})

	m.Dispatch(TypeDocumentOpened, DocumentData{Key: "a"})
	require.Equal(t, []string{"first:a", "second:a"}, got)

	m.Dispatch(TypeAppQuit, AppQuitData{})
	require.Len(t, got, 2)
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager(logger.Discard())
	calls := 0
	id := m.Subscribe(TypeSelectionChanged, func(Event) bool { calls++; return false })
	m.Subscribe(TypeSelectionChanged, func(Event) bool { calls += 10; return false })
	require.Equal(t, 2, m.Count(TypeSelectionChanged))

	m.Unsubscribe(id)
	m.Unsubscribe(id)
	m.Unsubscribe(9999)
	require.Equal(t, 1, m.Count(TypeSelectionChanged))

	m.Dispatch(TypeSelectionChanged, SelectionChangedData{})
	require.Equal(t, 10, calls)
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	m := NewManager(logger.Discard())
	var id SubscriptionID
	calls := 0
	id = m.Subscribe(TypeConfigChanged, func(Event) bool {
		calls++
		m.Unsubscribe(id)
		m.Subscribe(TypeConfigChanged, func(Event) bool { calls += 100; return false })
		return false
	})
	m.Subscribe(TypeConfigChanged, func(Event) bool { calls += 10; return false })

	m.Dispatch(TypeConfigChanged, ConfigChangedData{})
	require.Equal(t, 11, calls)

	m.Dispatch(TypeConfigChanged, ConfigChangedData{})
	require.Equal(t, 121, calls)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "DocumentWillSave", TypeDocumentWillSave.String())
	require.Equal(t, "Type(99)", Type(99).String())
}
