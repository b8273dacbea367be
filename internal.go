package corelog

// Internal receives diagnostics generated by this module itself (a dropped
// or undeliverable async record, a handler's formatter or sink error, a
// recovered handler panic) that have nowhere else to go, because routing
// them through a Logger would recurse. It is nil by default; a host program
// may set it once at startup. While it is nil, handler.Blocking writes its
// formatter and sink errors to os.Stderr and other diagnostics are dropped.
// Grounded on the teacher's per-handler Options.WriteError hook, generalized
// to the handful of internal failure points that aren't tied to one handler.
var Internal func(severity Severity, msg string, err error)

func reportInternal(sev Severity, msg string, err error) {
	if Internal != nil {
		Internal(sev, msg, err)
	}
}
