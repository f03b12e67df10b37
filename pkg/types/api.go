package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Required: HuggingFace Model ID using MODEL_ID environment variable
	Error string `json:"error" example:"Required: HuggingFace Model ID using MODEL_ID environment variable"`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}

// SlotStatus describes one model slot.
type SlotStatus struct {
	// Slot name: language or embedding.
	// example: language
	Slot string `json:"slot" example:"language"`
	// Lifecycle state: empty, loading or loaded.
	// example: loaded
	State string `json:"state" example:"loaded"`
	// Model identifier the slot was loaded from.
	// example: TheBloke/Mistral-7B-Instruct-v0.2-GGUF
	ModelID string `json:"model_id,omitempty" example:"TheBloke/Mistral-7B-Instruct-v0.2-GGUF"`
	// Revision pin, when one was configured.
	// example: main
	Revision string `json:"revision,omitempty" example:"main"`
	// Device the model was placed on.
	// example: cuda
	Device string `json:"device,omitempty" example:"cuda"`
	// Load completion time (unix seconds).
	// example: 1700000000
	LoadedAt int64 `json:"loaded_at_unix,omitempty" example:"1700000000"`
	// Wall time spent constructing the model, in milliseconds.
	// example: 5123
	LoadMillis int64 `json:"load_ms,omitempty" example:"5123"`
	// Error from the most recent failed load, if any.
	LastError string `json:"last_error,omitempty"`
}

// MemoryResponse is returned by GET /memory.
type MemoryResponse struct {
	// Device mode.
	// example: cuda
	Device string `json:"device" example:"cuda"`
	// Free bytes summed across visible devices.
	// example: 21474836480
	FreeBytes uint64 `json:"free_bytes" example:"21474836480"`
	// Bytes held by this process across visible devices.
	// example: 4294967296
	AllocatedBytes uint64 `json:"allocated_bytes" example:"4294967296"`
	// Total bytes across visible devices.
	// example: 25769803776
	TotalBytes uint64 `json:"total_bytes" example:"25769803776"`
	// Free memory in GB, one decimal.
	// example: 20
	FreeGB float64 `json:"free_gb" example:"20"`
	// Allocated memory in GB, one decimal.
	// example: 4
	AllocatedGB float64 `json:"allocated_gb" example:"4"`
	// Total memory in GB, one decimal.
	// example: 24
	TotalGB float64 `json:"total_gb" example:"24"`
}

// DeviceResponse is returned by GET /device.
type DeviceResponse struct {
	// Device mode.
	// example: cuda
	Device string `json:"device" example:"cuda"`
	// Number of visible accelerator devices.
	// example: 1
	DeviceCount int `json:"device_count" example:"1"`
	// Human readable runtime and driver report.
	Versions string `json:"versions"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// One entry per model slot.
	Slots []SlotStatus `json:"slots"`
	// Current accelerator memory.
	Memory MemoryResponse `json:"memory"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total number of model constructions.
	// example: 3
	LoadsTotal uint64 `json:"loads_total" example:"3"`
	// Total number of evictions.
	// example: 1
	UnloadsTotal uint64 `json:"unloads_total" example:"1"`
}
