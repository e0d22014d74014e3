package chipid

import (
	"testing"

	"go.viam.com/test"

	"github.com/ipcam/camhal/sysinfo"
	"github.com/ipcam/camhal/testutils"
)

func fakeRoot(t *testing.T, files map[string]string) sysinfo.Root {
	return sysinfo.Root(testutils.FakeRoot(t, files))
}

func TestDetect(t *testing.T) {
	t.Run("novatek from device tree", func(t *testing.T) {
		root := fakeRoot(t, map[string]string{
			modelPath:      "Novatek NA51055\x00",
			compatiblePath: "novatek,na51055\x00nvt,ca9\x00",
		})
		id, err := Detect(root)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, id.Manufacturer, test.ShouldEqual, VendorNovatek)
		test.That(t, id.ChipName, test.ShouldEqual, "NA51055")
		test.That(t, id.FullName(), test.ShouldEqual, "NTNA51055")
		test.That(t, id.BoardID, test.ShouldEqual, "Novatek NA51055")
		test.That(t, id.DeviceTreeCompatible, test.ShouldResemble, []string{"novatek,na51055", "nvt,ca9"})
	})

	t.Run("hisilicon from cpuinfo", func(t *testing.T) {
		root := fakeRoot(t, map[string]string{
			cpuinfoPath: "processor\t: 0\nHardware\t: hi3516ev300\nRevision\t: 0000\n",
		})
		id, err := Detect(root)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, id.Manufacturer, test.ShouldEqual, VendorHisi)
		test.That(t, id.ChipName, test.ShouldEqual, "3516EV300")
		test.That(t, id.Generation, test.ShouldEqual, 3)
		test.That(t, id.BoardID, test.ShouldBeEmpty)
	})

	t.Run("goke inherits hisilicon alias", func(t *testing.T) {
		root := fakeRoot(t, map[string]string{
			cpuinfoPath: "Hardware\t: gk7205v200\n",
		})
		id, err := Detect(root)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, id.Manufacturer, test.ShouldEqual, VendorGoke)
		test.That(t, id.ChipName, test.ShouldEqual, "7205V200")
		test.That(t, id.ShortManufacturer, test.ShouldEqual, "HI")
	})

	t.Run("unknown", func(t *testing.T) {
		root := fakeRoot(t, map[string]string{
			cpuinfoPath: "Hardware\t: BCM2835\n",
		})
		_, err := Detect(root)
		test.That(t, err, test.ShouldEqual, ErrUnknownChip)
	})
}
