package wowhead

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"gathergen/lib/pagecache"
	"gathergen/lib/restyutil"
	"gathergen/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/wowhead")

const DefaultBaseUrl = "https://www.wowhead.com"

var instrumentOutput restyutil.InstrumentOutput

// dumps every http exchange to the given output, useful when the
// extraction regexes stop matching and you need the raw pages.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	instrumentOutput = output
}

type Client struct {
	BaseUrl string
	Http    *resty.Client
	cache   *pagecache.Cache
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// optional, fetched pages are served from here when fresh
	Cache *pagecache.Cache
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/wowhead/http")
	restyutil.InstrumentClient(client, tracer, instrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		cache:   opts.Cache,
	}, nil
}

// fetches the page for one object id and extracts its title, the zone
// name links and the mapper coordinate blob. an object without mapper
// data is not an error, the page simply yields zero locations.
func (c *Client) FetchObject(ctx context.Context, objectId string) (ObjectPage, error) {
	ctx, span := tracer.Start(ctx, "client:FetchObject")
	defer span.End()

	link := fmt.Sprintf("%s/object=%s", c.BaseUrl, objectId)

	if c.cache != nil {
		body, hit := c.cache.Get(ctx, link)
		if hit {
			span.AddEvent("cache hit")
			return ParseObjectPage(body)
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/object=%s", objectId))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch object page")
		return ObjectPage{}, err
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("fetch object %s: unexpected status %d", objectId, res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return ObjectPage{}, err
	}

	body := res.Body()
	if c.cache != nil {
		err := c.cache.Put(ctx, link, body)
		if err != nil {
			span.RecordError(err)
		}
	}

	return ParseObjectPage(body)
}
