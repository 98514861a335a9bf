package resolve

import "github.com/mmr-tortoise/rsnc/internal/model"

// Notes lists options that were accepted but have no effect in the
// resolved mode. They are advisory and never turn into errors.
func Notes(raw model.RawOptions, cfg model.ResolvedConfig) []string {
	var notes []string
	if cfg.KeepAccept && cfg.Mode.IsClient() {
		notes = append(notes, "keep-accept only applies to server modes; ignored")
	}
	if cfg.Address != nil && cfg.Mode.IsServer() {
		notes = append(notes, "servers bind all interfaces; IPADDR "+*cfg.Address+" ignored")
	}
	if raw.TCP && raw.UDP {
		notes = append(notes, "both tcp and udp requested; using tcp")
	}
	return notes
}
