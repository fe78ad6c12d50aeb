package main

import "testing"

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"serve", "refresh", "migrate"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == nil || cmd.Name() != name {
			t.Fatalf("%s command not registered: cmd=%v err=%v", name, cmd, err)
		}
	}
}
