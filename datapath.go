package synthpop

import (
	"os"
	"sync"
)

// DefaultDataPath is used when ASPR_DATA_PATH is unset.
const DefaultDataPath = "ASPR_Synthetic_Population"

var dataPath = struct {
	sync.RWMutex
	path string
}{path: initialDataPath()}

func initialDataPath() string {
	if p := os.Getenv("ASPR_DATA_PATH"); p != "" {
		return p
	}
	return DefaultDataPath
}

// DataPath returns the path OpenDefault opens.
func DataPath() string {
	dataPath.RLock()
	defer dataPath.RUnlock()
	return dataPath.path
}

// SetDataPath changes the path OpenDefault opens.
func SetDataPath(path string) {
	dataPath.Lock()
	defer dataPath.Unlock()
	dataPath.path = path
}
