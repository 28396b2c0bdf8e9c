package main

import (
	"fmt"
	"github.com/allape/opentouch/config"
	"github.com/allape/opentouch/factory"
	"github.com/allape/opentouch/logger"
	"github.com/allape/opentouch/touch"
	"github.com/allape/opentouch/touch/device/evdev"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var log = logger.New("[main]")

const Version = "1.0.0"

var (
	configFile  string
	listDevices bool
	dumpEvents  bool
)

var rootCmd = &cobra.Command{
	Use:   "opentouch",
	Short: "Bridge a touchscreen to a serial peer as DOWN/MOVE/UP lines",
	Long: `opentouch reads touch events from a Linux evdev device, remaps them into
the target coordinate space and sends them to a serial peer as text lines,
one of "DOWN x y", "MOVE x y" or "UP x y". When the serial port cannot be
opened it falls back to a pty pair and reports the slave path, so the same
stream can still be monitored locally.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&configFile, "config", "c", "", "config file, optional "+config.DefaultConfigPath+" by default")
	flags.BoolVar(&listDevices, "list-devices", false, "list input devices with their ABS capabilities, then exit")
	flags.BoolVar(&dumpEvents, "dump-events", false, "log every event read from the device")

	flags.StringP("device", "d", "", "evdev path of the touch device, picked by heuristics when empty")
	flags.BoolP("grab", "g", false, "grab the device for exclusive access while bridging")

	flags.String("transport", string(config.TransportSerialPort), `transport driver: "serialport", "pty" or "none"`)
	flags.StringP("serial", "s", config.DefaultSerialPort, "serial port to send lines to")
	flags.IntP("baud", "b", config.DefaultBaud, "serial baud rate")

	flags.Int("screen-w", config.DefaultScreenW, "touchscreen width in device pixels")
	flags.Int("screen-h", config.DefaultScreenH, "touchscreen height in device pixels")
	flags.Int("iphone-w", config.DefaultTargetW, "target width coordinates are mapped to")
	flags.Int("iphone-h", config.DefaultTargetH, "target height coordinates are mapped to")

	flags.String("listen", "", "serve the websocket monitor page on this address, e.g. :8080")
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	conf, err := config.GetConfig(configFile)
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}

	overrideConfig(cmd, &conf)

	if listDevices {
		return printDevices()
	}

	dev, err := factory.TouchDeviceFromConfig(conf)
	if err != nil {
		return fmt.Errorf("touch device from config: %w", err)
	}

	trans, err := factory.TransportFromConfig(conf)
	if err != nil {
		_ = dev.Close()
		return fmt.Errorf("transport from config: %w", err)
	}
	defer func() {
		if trans != nil {
			_ = trans.Close()
		}
	}()

	options := touch.Options{
		Grab:       conf.Device.Grab,
		DumpEvents: dumpEvents,
	}

	hub := SetupMonitor(conf)
	if hub != nil {
		defer func() {
			_ = hub.Close()
		}()
		options.OnLine = hub.Broadcast
	}

	bridge, err := touch.New(dev, trans, touch.Mapping{
		ScreenW: conf.Mapping.ScreenW,
		ScreenH: conf.Mapping.ScreenH,
		TargetW: conf.Mapping.TargetW,
		TargetH: conf.Mapping.TargetH,
	}, options)
	if err != nil {
		_ = dev.Close()
		return fmt.Errorf("new bridge: %w", err)
	}
	defer func() {
		_ = bridge.Close()
	}()

	log.Printf("mapping screen %dx%d -> target %dx%d",
		conf.Mapping.ScreenW, conf.Mapping.ScreenH,
		conf.Mapping.TargetW, conf.Mapping.TargetH)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- bridge.Run()
	}()

	log.Println("started, interrupt to quit")

	select {
	case sig := <-sigs:
		log.Println("exiting with", sig)
		_ = bridge.Close()
		<-done
		return nil
	case err = <-done:
		return err
	}
}

// overrideConfig applies the flags the operator actually set on top of the
// values from the config file.
func overrideConfig(cmd *cobra.Command, conf *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("device") {
		conf.Device.Src, _ = flags.GetString("device")
	}
	if flags.Changed("grab") {
		conf.Device.Grab, _ = flags.GetBool("grab")
	}
	if flags.Changed("transport") {
		t, _ := flags.GetString("transport")
		conf.Transport.Type = config.TransportDriverType(t)
	}
	if flags.Changed("serial") {
		conf.Transport.Src, _ = flags.GetString("serial")
	}
	if flags.Changed("baud") {
		conf.Transport.Baud, _ = flags.GetInt("baud")
	}
	if flags.Changed("screen-w") {
		conf.Mapping.ScreenW, _ = flags.GetInt("screen-w")
	}
	if flags.Changed("screen-h") {
		conf.Mapping.ScreenH, _ = flags.GetInt("screen-h")
	}
	if flags.Changed("iphone-w") {
		conf.Mapping.TargetW, _ = flags.GetInt("iphone-w")
	}
	if flags.Changed("iphone-h") {
		conf.Mapping.TargetH, _ = flags.GetInt("iphone-h")
	}
	if flags.Changed("listen") {
		conf.Monitor.Addr, _ = flags.GetString("listen")
	}
}

func printDevices() error {
	infos, err := evdev.List()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		log.Println("no input devices found, check /dev/input permissions or run as root")
		return nil
	}

	for _, info := range infos {
		log.Printf("%s  %s  [%s]", info.Path, info.Name, strings.Join(info.AbsCodeNames(), " "))
	}

	return nil
}
