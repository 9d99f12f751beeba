package cli

import (
	"testing"
)

func TestExecuteWrapper(t *testing.T) {
	// a nil store makes PersistentPreRunE build one from the flag defaults
	shopStore = nil
	t.Cleanup(resetCLI)
	rootCmd.PersistentFlags().Set("catalog", "memory")
	rootCmd.SetArgs([]string{"products"})
	if err := Execute(); err != nil {
		t.Fatalf("Execute wrapper failed: %v", err)
	}
	if shopStore == nil {
		t.Fatal("expected store to be initialised")
	}
}
