// Command sslprobe reports which libssl symbols back each operation of the
// libssl package and optionally performs a TLS request with them.
//
//	sslprobe [-lib file|default] [-connect host:port[,host:port...]]
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aristanetworks/glog"
	"golang.org/x/sync/errgroup"

	"github.com/aristanetworks/go-openssl-fips/dynssl/libssl"
)

var (
	libFlag = flag.String("lib", "",
		`libssl shared library to load, "default" for the one linked into the process, empty to search the system`)
	connectFlag = flag.String("connect", "",
		"comma separated host:port addresses to send a HEAD request to")
	timeoutFlag = flag.Duration("timeout", 10*time.Second, "dial and I/O timeout")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	var err error
	switch *libFlag {
	case "default":
		err = libssl.InitDefault()
	default:
		err = libssl.Init(*libFlag)
	}
	if err != nil {
		glog.Errorf("sslprobe: %v", err)
		os.Exit(1)
	}
	fmt.Println(libssl.VersionText())
	printBindings()

	if *connectFlag == "" {
		return
	}
	addrs := strings.Split(*connectFlag, ",")
	results := make([]string, len(addrs))
	var g errgroup.Group
	for i, addr := range addrs {
		g.Go(func() error {
			status, err := head(strings.TrimSpace(addr))
			if err != nil {
				return fmt.Errorf("%s: %w", addr, err)
			}
			results[i] = addr + ": " + status
			return nil
		})
	}
	err = g.Wait()
	for _, r := range results {
		if r != "" {
			fmt.Println(r)
		}
	}
	if err != nil {
		glog.Errorf("sslprobe: %v", err)
		os.Exit(1)
	}
}

func printBindings() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tSYMBOL\tBOUND\tLINKED")
	for _, b := range libssl.Probe() {
		fmt.Fprintf(w, "%s\t%s\t%v\t%v\n", b.Operation, b.Symbol, b.Bound, b.Linked)
	}
	w.Flush()
}

// head sends a HEAD request to addr over TLS and returns the status line.
func head(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	conn, err := net.DialTimeout("tcp", addr, *timeoutFlag)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	// File returns a blocking duplicate of the socket.
	file, err := conn.(*net.TCPConn).File()
	if err != nil {
		return "", err
	}
	defer file.Close()
	deadline := time.Now().Add(*timeoutFlag)

	ctx, err := libssl.NewContext(
		libssl.WithDefaultVerifyPaths(),
		libssl.WithMode(libssl.SSL_MODE_AUTO_RETRY))
	if err != nil {
		return "", err
	}
	defer ctx.Close()
	s, err := ctx.NewSession(int(file.Fd()), host)
	if err != nil {
		return "", err
	}
	defer s.Close()

	for {
		err = s.Handshake()
		var sslErr *libssl.SSLError
		if err == nil || !errors.As(err, &sslErr) || !sslErr.IsRetryable() || time.Now().After(deadline) {
			break
		}
		glog.V(1).Infof("sslprobe: %s handshake: %v", addr, err)
	}
	if err != nil {
		return "", fmt.Errorf("handshake: %w", err)
	}
	glog.V(1).Infof("sslprobe: %s handshake complete", addr)

	req := "HEAD / HTTP/1.1\r\nHost: " + host + "\r\nConnection: close\r\n\r\n"
	if _, err := s.Write([]byte(req)); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	status, err := bufio.NewReader(s).ReadString('\n')
	if err != nil && status == "" {
		return "", fmt.Errorf("read: %w", err)
	}
	if err := s.Shutdown(); err != nil {
		glog.V(1).Infof("sslprobe: %s shutdown: %v", addr, err)
	}
	return strings.TrimSpace(status), nil
}
