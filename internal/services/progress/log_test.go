package progress

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
)

func TestDrainKeepsOrderAndWritesSink(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(&buf, nil)

	ch := make(chan rename.Outcome, 3)
	ch <- rename.Outcome{Kind: constants.OutcomeWouldRename, Source: "a.pdf", FinalName: "A.pdf"}
	ch <- rename.Outcome{Kind: constants.OutcomeFailed, Source: "b.pdf", Reason: "boom"}
	ch <- rename.Outcome{Kind: constants.OutcomeDone}
	close(ch)

	done, ok := l.Drain(ch)
	require.True(t, ok)
	assert.Equal(t, constants.OutcomeDone, done.Kind)

	want := []string{"Will rename a.pdf to: A.pdf", "Error b.pdf: boom", "Done."}
	assert.Equal(t, want, l.Lines())
	assert.Equal(t, strings.Join(want, "\n")+"\n", buf.String())
	assert.Len(t, l.Outcomes(), 3)
}

func TestDrainWithoutDone(t *testing.T) {
	ch := make(chan rename.Outcome)
	close(ch)
	_, ok := NewLog(nil, nil).Drain(ch)
	assert.False(t, ok)
}

func TestConcurrentAppendsAreSerialized(t *testing.T) {
	l := NewLog(nil, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Append(fmt.Sprintf("%d-%d", i, j))
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, l.Lines(), 400)

	lines := l.Lines()
	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0])
}
