package ulid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{GenerateID(), true},
		{"0", false},
		{"invalidulid", false},
		{"01B4E6BXY0PRJ5G420D25MWQY!", false},
		{"01b4e6bxy0prj5g420d25mwqyq", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidID(tt.id))
		})
	}
}

func TestGenerateID_Unique(t *testing.T) {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{})
	)

	const numIDs = 5000

	wg.Add(numIDs)
	for i := 0; i < numIDs; i++ {
		go func() {
			defer wg.Done()
			id := GenerateID()
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, numIDs)
}

func TestMockGenerator(t *testing.T) {
	MockGenerator("01HF7BT3HEQBTBM9SSJZM7SQB9")
	defer ResetGenerator()

	assert.Equal(t, "01HF7BT3HEQBTBM9SSJZM7SQB9", GenerateID())
	assert.Equal(t, "01HF7BT3HEQBTBM9SSJZM7SQB9", GenerateID())
}
