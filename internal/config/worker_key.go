package config

type WorkerKeyStruct struct {
	RecomputeResultsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	RecomputeResultsQueue: "recompute_results_queue",
}
