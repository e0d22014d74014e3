package hal

import (
	"os"
	"strconv"
	"strings"

	"github.com/ipcam/camhal/sysinfo"
)

const ethernetIface = "/sys/class/net/eth0"

// detectEthernet records the MAC address and link speed of the onboard interface under
// root["ethernet"]. A board without the interface leaves root untouched.
func detectEthernet(sys sysinfo.Root, root map[string]any) error {
	mac, err := os.ReadFile(sys.Path(ethernetIface + "/address"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	eth := map[string]any{"mac": strings.TrimSpace(string(mac))}
	// speed reads as -1 or fails outright while the link is down.
	if raw, err := os.ReadFile(sys.Path(ethernetIface + "/speed")); err == nil {
		if speed, err := strconv.Atoi(strings.TrimSpace(string(raw))); err == nil && speed > 0 {
			eth["speed"] = speed
		}
	}
	root["ethernet"] = eth
	return nil
}
