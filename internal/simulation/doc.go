// Package simulation runs multi-day affinity simulations between two
// persona agents.
//
// An Orchestrator drives one pairing through a fixed schedule: each day has
// a morning texting session initiated by the first participant, an
// optional shared activity on configured days, and an evening session
// initiated by the second participant. Every turn moves the speaker's
// affinity level; the mean of both final levels becomes the compatibility
// verdict. Results are checkpointed to a store.ResultStore while the run
// progresses and always written on completion or failure.
//
// A single simulation is strictly sequential. RunBatch and Pool run many
// independent pairings concurrently, sharing only the generation client.
//
// Usage:
//
//	orch := simulation.New(simulation.DefaultConfig(), client, results, logger, nil)
//	result, err := orch.Run(ctx, alice, bob)
//	if err != nil {
//	    // result is still populated with the completed days
//	}
//	fmt.Println(result.Compatibility.Rating)
package simulation
