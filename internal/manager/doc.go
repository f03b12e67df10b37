// Package manager holds the process-wide model registry: one language-model
// slot and one embedding-model slot, each filled lazily on first request and
// kept until the process exits (the embedding slot can also be evicted).
// It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, accessors.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: slot state, load options and the Model handle.
//   - env.go: environment variables read at load time.
//   - language.go / embedding.go: the two lazy loaders; load.go: the shared
//     construct step.
//   - backend_runtime.go: the production ModelBackend (GGUF resolution,
//     embedding model download).
//   - unload.go: embedding eviction and Close.
//   - memory.go: device selection, memory reporting, the memory gate, reclaim.
//   - report.go: runtime and driver version report.
//   - errors.go: error types and predicates (IsConfiguration, IsResource, ...).
//   - events.go, eventpub_memory.go: lifecycle events.
//   - metrics.go: Prometheus collectors.
//   - status_report.go: Status/Snapshot reporting helpers.
//   - sanity.go: which runtimes this binary was built with.
//
// Build tags and runtimes:
//
//   - In-process llama (language model):
//     Uses the go-llama.cpp adapter. Enabled with `-tags=llama`.
//     Files: adapter_llama.go, llama_cgo.go (linker rpath hints).
//     Without the tag adapter_llama_stub.go fails loads with a
//     dependency-unavailable error.
//
//   - hugot (embedding model):
//     Pure Go session by default (adapter_hugot_go.go). With `-tags=ORT` the
//     ONNX Runtime session is used instead, with the CUDA provider when the
//     device is "cuda" (adapter_hugot_ort.go).
//
// Loads are serialised: concurrent first calls construct a model once and
// every caller receives the same handle.
package manager
