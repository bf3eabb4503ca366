package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://glintlab.github.io/glint/

// GettingStarted is the quick start guide for new users:
// enabling LAN Control, first scan, first command.
const GettingStarted = "https://glintlab.github.io/glint/getting-started/"

// MulticastTroubleshooting covers networks where discovery finds
// nothing: multicast snooping, VLANs, firewall rules for UDP 1982.
const MulticastTroubleshooting = "https://glintlab.github.io/glint/troubleshooting/multicast/"

// ProtocolReference documents the discovery and control wire formats
// the tools speak, with captured examples.
const ProtocolReference = "https://glintlab.github.io/glint/protocol/"

// EmulatorGuide explains using glint-emu for development and CI.
const EmulatorGuide = "https://glintlab.github.io/glint/emulator/"
