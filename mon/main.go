package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"github.com/allape/opentouch/logger"
	"github.com/allape/opentouch/touch"
	"go.bug.st/serial"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

// Debug console for the opentouch line stream. Attach it to the real
// serial port, or to the pty slave path opentouch reports in fallback mode:
//
//	go run ./mon /dev/ttyUSB0 115200
//	go run ./mon /dev/pts/3
//
// Received lines are pretty-printed as touch commands. Stdin is forwarded
// to the port for poking the peer by hand: plain text is sent as a line,
// "0x..." is decoded as hex and "0b..." as bits before sending.

var log = logger.New("[mon]")

const (
	DefaultName = "/dev/ttyUSB0"
	DefaultBaud = 115200
)

func main() {
	name := DefaultName
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	baud := DefaultBaud
	if len(os.Args) > 2 {
		b, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalln("invalid baud rate:", os.Args[2])
		}
		baud = b
	}

	mode := &serial.Mode{
		BaudRate: baud,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		log.Fatalln("unable to open port:", err)
	}

	log.Println("attached to", name, "@", baud)

	go func(port serial.Port) {
		buf := make([]byte, 1024)
		unfinishedLine := ""
		for {
			n, err := port.Read(buf)
			if err != nil {
				log.Fatalln("read error:", err)
			}
			if n == 0 {
				log.Println("EOF")
				return
			}
			lines := strings.Split(unfinishedLine+string(buf[:n]), "\n")
			for i := 0; i < len(lines)-1; i++ {
				printLine(lines[i])
			}
			unfinishedLine = lines[len(lines)-1]
		}
	}(port)

	go func(s serial.Port) {
		reader := bufio.NewReader(os.Stdin)
		for {
			text, err := reader.ReadString('\n')
			if err != nil {
				log.Fatalln("fail to read from stdin:", err)
			}

			text = strings.TrimSpace(text)

			var raw []byte

			if strings.HasPrefix(text, "0x") {
				text = strings.ReplaceAll(text, " ", "")
				raw, err = hex.DecodeString(text[2:])
				if err != nil {
					log.Println("invalid hex string:", text)
					continue
				}
			} else if strings.HasPrefix(text, "0b") {
				text = strings.ReplaceAll(text, " ", "")
				raw, err = BitsString2Bytes(text[2:])
				if err != nil {
					log.Println(err, text)
					continue
				}
			} else {
				raw = []byte(text + "\n")
			}

			log.Println("> 0x", hex.EncodeToString(raw))

			_, err = s.Write(raw)
			if err != nil {
				log.Fatalln("write error:", err)
			}
			err = s.Drain()
			if err != nil {
				log.Fatalln("flush error:", err)
			}
		}
	}(port)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	log.Println("awaiting signal")
	sig := <-sigs
	log.Println("exiting with", sig)

	_ = port.Close()
}

// printLine pretty-prints one received line, anything that is not a touch
// command is shown raw.
func printLine(line string) {
	msg, err := touch.ParseMessage(line)
	if err != nil {
		log.Println("?", line)
		return
	}
	log.Printf("%-4s x=%-6d y=%d", msg.Verb, msg.X, msg.Y)
}

func BitsString2Bytes(bitsStr string) ([]byte, error) {
	bits := []byte(bitsStr)
	if len(bits)%8 != 0 {
		return nil, errors.New("invalid binary string")
	}
	bs := make([]byte, len(bits)/8)
	for i := 0; i < len(bits); i++ {
		byteIndex := i / 8
		if bits[i] == '1' {
			bs[byteIndex] = bs[byteIndex]<<1 | 1
		} else {
			bs[byteIndex] = bs[byteIndex] << 1
		}
	}
	return bs, nil
}
