package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger().WithField("package", "vision")

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	DefaultModel    = "gemini-1.5-flash"

	requestTimeout = 30 * time.Second
)

// prompt asks the model for a JSON object with exactly the PaymentRecord key
// set, null for absent fields.
const prompt = `Analyze this payment screenshot and extract ALL information in JSON format:

{
    "transaction_id": "TID, Transaction ID, or Reference number",
    "amount": "complete amount with currency (Rs., PKR, etc.)",
    "date": "full date and time as shown",
    "sender": "sender name or from field",
    "receiver": "receiver name or to field",
    "fee": "any fee or charges mentioned",
    "payment_method": "payment app or method used",
    "status": "transaction status (Successful, Failed, Pending)",
    "phone_numbers": ["all phone numbers found"],
    "reference": "additional reference numbers",
    "bank_info": "bank or financial institution",
    "location": "any location mentioned",
    "all_text": "complete raw extracted text"
}

Extract EXACTLY what you see. Use null for missing fields, not empty strings.
Be very careful with amounts and numbers. Include currency symbols.`

// jsonSpanRe locates the first {...} span in a free-form reply, allowing
// embedded newlines.
var jsonSpanRe = regexp.MustCompile(`(?s)\{.*\}`)

// Client calls a vision-capable generative service and turns its free-form
// reply into a mapping. Every failure mode degrades to a returned mapping:
// transport or API errors yield {"error": ...}, unparseable replies yield
// {"all_text": ...}. The caller inspects the mapping, the client never
// returns an error.
type Client struct {
	http     *http.Client
	endpoint *url.URL
	apiKey   string
	model    string
}

func New(apiKey string, model string) (*Client, error) {
	u, err := url.Parse(defaultEndpoint)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		http:     &http.Client{},
		endpoint: u,
		apiKey:   apiKey,
		model:    model,
	}, nil
}

func (c *Client) SetHttpTransport(transport http.RoundTripper) {
	c.http.Transport = transport
}

// Available reports whether the service is configured for this process.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Extract sends the image with the schema prompt to the service and returns
// the parsed mapping. An unconfigured client returns an empty mapping
// immediately.
func (c *Client) Extract(ctx context.Context, image []byte, mimeType string) map[string]any {
	if !c.Available() {
		return map[string]any{}
	}

	text, err := c.generate(ctx, image, mimeType)
	if err != nil {
		log.Errorf("vision extraction failed: %v", err)
		return map[string]any{"error": err.Error()}
	}

	text = strings.TrimSpace(text)
	span := jsonSpanRe.FindString(text)
	if span == "" {
		log.Warnf("no JSON found in vision response")
		return map[string]any{"all_text": text}
	}

	var extracted map[string]any
	if err := json.Unmarshal([]byte(span), &extracted); err != nil {
		log.Warnf("unable to parse JSON from vision response: %v", err)
		return map[string]any{"all_text": text}
	}
	return extracted
}

func (c *Client) generate(ctx context.Context, image []byte, mimeType string) (string, error) {
	genUrl, err := c.endpoint.Parse(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("unable to parse URL: %v", err)
	}
	q := genUrl.Query()
	q.Set("key", c.apiKey)
	genUrl.RawQuery = q.Encode()

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("unable to marshal JSON: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, genUrl.String(), bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("unable to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to perform HTTP request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("unexpected status %s: %s", res.Status, string(b))
	}

	var genRes generateResponse
	if err := json.NewDecoder(res.Body).Decode(&genRes); err != nil {
		return "", fmt.Errorf("unable to decode response: %v", err)
	}
	if len(genRes.Candidates) == 0 {
		return "", fmt.Errorf("empty response")
	}

	buffer := bytes.NewBuffer(nil)
	for _, p := range genRes.Candidates[0].Content.Parts {
		buffer.WriteString(p.Text)
	}
	return buffer.String(), nil
}
