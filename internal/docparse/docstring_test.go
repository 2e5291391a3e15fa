package docparse

import (
	"testing"

	"github.com/driftlens/driftlens/internal/models"
)

func TestParseDocstring_googleSections(t *testing.T) {
	text := `"""Fetches a URL and parses the response.

    Args:
        url (str): the address to fetch
        timeout (int, optional): seconds before giving up

    Returns:
        dict: the parsed response

    Raises:
        ValueError: if url is empty
    """`
	doc := Parse(text, models.DocStyleDocstring)
	if doc.Description != "Fetches a URL and parses the response." {
		t.Errorf("description %q", doc.Description)
	}
	if len(doc.Params) != 2 {
		t.Fatalf("params %+v", doc.Params)
	}
	if doc.Params[0].Name != "url" || doc.Params[0].Type != "str" || doc.Params[0].Description != "the address to fetch" {
		t.Errorf("param url: %+v", doc.Params[0])
	}
	to := doc.Params[1]
	if to.Name != "timeout" || to.Type != "int" || !to.IsOptional {
		t.Errorf("param timeout: %+v", to)
	}
	if doc.Returns == nil || doc.Returns.Type != "dict" || doc.Returns.Description != "the parsed response" {
		t.Errorf("returns %+v", doc.Returns)
	}
	if len(doc.Throws) != 1 || doc.Throws[0].Type != "ValueError" {
		t.Errorf("throws %+v", doc.Throws)
	}
}

func TestParseDocstring_sphinxFields(t *testing.T) {
	text := `"""Connects to the broker.

    :param str host: broker hostname
    :param port: broker port
    :type port: int
    :returns: the open connection
    :rtype: Connection
    :raises ConnectionError: when the broker is unreachable
    """`
	doc := Parse(text, models.DocStyleDocstring)
	if len(doc.Params) != 2 {
		t.Fatalf("params %+v", doc.Params)
	}
	if doc.Params[0].Name != "host" || doc.Params[0].Type != "str" {
		t.Errorf("param host: %+v", doc.Params[0])
	}
	// :type: refines the earlier :param: entry.
	if doc.Params[1].Name != "port" || doc.Params[1].Type != "int" || doc.Params[1].Description != "broker port" {
		t.Errorf("param port: %+v", doc.Params[1])
	}
	if doc.Returns == nil || doc.Returns.Type != "Connection" || doc.Returns.Description != "the open connection" {
		t.Errorf("returns %+v", doc.Returns)
	}
	if len(doc.Throws) != 1 || doc.Throws[0].Type != "ConnectionError" {
		t.Errorf("throws %+v", doc.Throws)
	}
}

func TestParseDocstring_numpySections(t *testing.T) {
	text := `"""Resamples the series.

    Parameters
    ----------
    rate : float
        samples per second
    window : str
        smoothing window name

    Returns
    -------
    ndarray
        the resampled values
    """`
	doc := Parse(text, models.DocStyleDocstring)
	if len(doc.Params) != 2 {
		t.Fatalf("params %+v", doc.Params)
	}
	if doc.Params[0].Name != "rate" || doc.Params[0].Type != "float" {
		t.Errorf("param rate: %+v", doc.Params[0])
	}
	if doc.Params[0].Description != "samples per second" {
		t.Errorf("rate description %q", doc.Params[0].Description)
	}
	if doc.Params[1].Name != "window" || doc.Params[1].Type != "str" {
		t.Errorf("param window: %+v", doc.Params[1])
	}
	if doc.Returns == nil || doc.Returns.Type != "ndarray" {
		t.Errorf("returns %+v", doc.Returns)
	}
}

func TestParseDocstring_plainDescription(t *testing.T) {
	doc := Parse(`"""Just a sentence describing behavior."""`, models.DocStyleDocstring)
	if doc.Description != "Just a sentence describing behavior." {
		t.Errorf("description %q", doc.Description)
	}
	if len(doc.Params) != 0 || doc.Returns != nil {
		t.Errorf("unexpected structure %+v", doc)
	}
}

func TestParseDocstring_starArgsEntries(t *testing.T) {
	text := `"""Runs handlers.

    Args:
        *handlers: callables to invoke
    """`
	doc := Parse(text, models.DocStyleDocstring)
	if len(doc.Params) != 1 || doc.Params[0].Name != "handlers" {
		t.Errorf("params %+v", doc.Params)
	}
}
