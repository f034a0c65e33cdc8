package hashtreekv_test

import (
	"testing"

	. "github.com/meridiandb/documentkit/driver/memory/hashtreekv"
	"github.com/meridiandb/documentkit/kv"
)

func TestStore(t *testing.T) {
	kv.RunTests(t, &Store{})
}
