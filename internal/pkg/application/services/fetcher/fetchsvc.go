package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/pkg/sftp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/ssh"
)

var tracer = otel.Tracer("api-cataloger/svcs/fetcher")

var (
	// ErrUnsupportedFormat is returned before any connection is made when
	// the URL path does not end in a supported file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrUnsupportedScheme is returned before any connection is made when
	// the URL scheme is neither https nor sftp.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	// ErrDownloadFailed covers every transport level failure, from DNS to
	// authentication to a non 2xx response. A single attempt is made and
	// the caller decides whether to retry.
	ErrDownloadFailed = errors.New("download failed")
)

// Credentials carry the username and password used for sftp sources.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Empty() bool {
	return c.Username == "" && c.Password == ""
}

//go:generate moq -rm -out fetchsvc_mock.go . FileFetcher

// FileFetcher downloads a dataset file over https or sftp into a temporary
// file. The returned reader MUST be closed by the caller, closing it also
// removes the temporary file.
type FileFetcher interface {
	Fetch(ctx context.Context, rawURL string, creds Credentials) (io.ReadCloser, error)
}

func NewFileFetcher(logger zerolog.Logger) FileFetcher {
	return &fileFetcher{
		log:           logger,
		hostKeyPolicy: ssh.InsecureIgnoreHostKey(),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// NewFileFetcherWithHostKeyCallback allows deployments to pin sftp host
// keys. The default accepts any host key, which is a deliberately weak
// trust policy inherited from the system's documented contract.
func NewFileFetcherWithHostKeyCallback(logger zerolog.Logger, cb ssh.HostKeyCallback) FileFetcher {
	f := NewFileFetcher(logger).(*fileFetcher)
	f.hostKeyPolicy = cb
	return f
}

type fileFetcher struct {
	log           zerolog.Logger
	hostKeyPolicy ssh.HostKeyCallback
	httpClient    http.Client
}

func (f *fileFetcher) Fetch(ctx context.Context, rawURL string, creds Credentials) (io.ReadCloser, error) {
	var err error
	ctx, span := tracer.Start(ctx, "fetch-file")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, f.log, ctx)

	source, err := url.Parse(rawURL)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, err.Error())
		return nil, err
	}

	ext := strings.ToLower(path.Ext(source.Path))
	if ext != ".csv" && ext != ".xlsx" && ext != ".json" {
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		return nil, err
	}

	var file io.ReadCloser

	switch source.Scheme {
	case "https":
		file, err = f.fetchHTTPS(ctx, log, source)
	case "sftp":
		file, err = f.fetchSFTP(ctx, log, source, creds)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedScheme, source.Scheme)
	}

	return file, err
}

func (f *fileFetcher) fetchHTTPS(ctx context.Context, log zerolog.Logger, source *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDownloadFailed, err.Error())
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msgf("failed to get %s", source.Redacted())
		return nil, fmt.Errorf("%w: %s", ErrDownloadFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Msgf("%s returned status code %d", source.Redacted(), resp.StatusCode)
		return nil, fmt.Errorf("%w: status code %d", ErrDownloadFailed, resp.StatusCode)
	}

	return bufferToTempFile(resp.Body)
}

// sftpAddr returns the dial address for an sftp source. Userinfo never
// leaks into the address and a URL without a port defaults to 22.
func sftpAddr(source *url.URL) string {
	if source.Port() == "" {
		return net.JoinHostPort(source.Hostname(), "22")
	}

	return source.Host
}

func (f *fileFetcher) fetchSFTP(ctx context.Context, log zerolog.Logger, source *url.URL, creds Credentials) (io.ReadCloser, error) {
	host := sftpAddr(source)

	conn, err := ssh.Dial("tcp", host, &ssh.ClientConfig{
		User:            creds.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(creds.Password)},
		HostKeyCallback: f.hostKeyPolicy,
	})
	if err != nil {
		log.Error().Err(err).Msgf("failed to connect to %s", host)
		return nil, fmt.Errorf("%w: %s", ErrDownloadFailed, err.Error())
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDownloadFailed, err.Error())
	}
	defer client.Close()

	remote, err := client.Open(source.Path)
	if err != nil {
		log.Error().Err(err).Msgf("failed to open remote path %s", source.Path)
		return nil, fmt.Errorf("%w: %s", ErrDownloadFailed, err.Error())
	}
	defer remote.Close()

	return bufferToTempFile(remote)
}

// bufferToTempFile copies the remote content into a temporary file that is
// removed when the returned reader is closed.
func bufferToTempFile(r io.Reader) (io.ReadCloser, error) {
	tmp, err := os.CreateTemp("", "cataloger-fetch-")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDownloadFailed, err.Error())
	}

	_, err = io.Copy(tmp, r)
	if err == nil {
		_, err = tmp.Seek(0, io.SeekStart)
	}

	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: %s", ErrDownloadFailed, err.Error())
	}

	return &tempFile{File: tmp}, nil
}

type tempFile struct {
	*os.File
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	os.Remove(t.Name())
	return err
}
