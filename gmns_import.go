package osm2gmns

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

var (
	nodeColumns = []string{"node_id", "name", "osm_node_id", "osm_highway", "ctrl_type", "main_node_id", "x_coord", "y_coord", "x_local", "y_local"}
	linkColumns = []string{"link_id", "name", "osm_way_id", "from_node_id", "to_node_id", "length", "lanes", "free_speed", "capacity", "link_type_name", "geometry"}
)

// csvRow gives access to CSV record values by column name
type csvRow struct {
	header map[string]int
	record []string
}

func (row csvRow) get(column string) string {
	idx, ok := row.header[column]
	if !ok || idx >= len(row.record) {
		return ""
	}
	return strings.TrimSpace(row.record[idx])
}

func (row csvRow) getInt(column string, defaultValue int) (int, error) {
	value := row.get(column)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "Can't parse column '%s'", column)
	}
	return parsed, nil
}

func (row csvRow) getFloat(column string, defaultValue float64) (float64, error) {
	value := row.get(column)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Can't parse column '%s'", column)
	}
	return parsed, nil
}

func readCSV(fname string, comma rune, required []string, handle func(row csvRow) error) error {
	file, err := os.Open(fname)
	if err != nil {
		return errors.Wrap(err, "Can't open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	headerRecord, err := reader.Read()
	if err != nil {
		return errors.Wrap(err, "Can't read header")
	}
	header := make(map[string]int, len(headerRecord))
	for i, column := range headerRecord {
		header[strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))] = i
	}
	for _, column := range required {
		if _, ok := header[column]; !ok {
			return errors.Errorf("No column '%s' in file '%s'", column, fname)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return errors.Wrapf(err, "Can't read line %d", line)
		}
		if err := handle(csvRow{header: header, record: record}); err != nil {
			return errors.Wrapf(err, "Bad line %d", line)
		}
	}
	return nil
}

// ImportFromCSV builds network from GMNS-like nodes and links files
func ImportFromCSV(nodesFname, linksFname string, comma rune) (*NetworkMacroscopic, error) {
	net := NewNetworkMacroscopic()

	err := readCSV(nodesFname, comma, []string{"node_id", "x_coord", "y_coord"}, func(row csvRow) error {
		node, err := nodeFromRow(row)
		if err != nil {
			return err
		}
		return net.AddNode(node)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't import nodes")
	}

	err = readCSV(linksFname, comma, []string{"link_id", "from_node_id", "to_node_id"}, func(row csvRow) error {
		link, err := linkFromRow(row)
		if err != nil {
			return err
		}
		return net.AddLink(link)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't import links")
	}
	return net, nil
}

func nodeFromRow(row csvRow) (*NetworkNode, error) {
	id, err := row.getInt("node_id", -1)
	if err != nil {
		return nil, err
	}
	if id < 0 {
		return nil, errors.New("Empty node_id")
	}
	lon, err := row.getFloat("x_coord", 0)
	if err != nil {
		return nil, err
	}
	lat, err := row.getFloat("y_coord", 0)
	if err != nil {
		return nil, err
	}
	node := NewNetworkNode(NetworkNodeID(id), row.get("osm_node_id"), parseControlType(row.get("ctrl_type")), orb.Point{lon, lat})
	node.name = row.get("name")
	node.osmHighway = row.get("osm_highway")
	node.mainNodeID, err = row.getInt("main_node_id", MAIN_NODE_NONE)
	if err != nil {
		return nil, err
	}
	if node.mainNodeID < 0 {
		node.mainNodeID = MAIN_NODE_NONE
	}
	if row.get("x_local") != "" && row.get("y_local") != "" {
		x, err := row.getFloat("x_local", 0)
		if err != nil {
			return nil, err
		}
		y, err := row.getFloat("y_local", 0)
		if err != nil {
			return nil, err
		}
		node.geomEuclidean = orb.Point{x, y}
	}
	return node, nil
}

func linkFromRow(row csvRow) (*NetworkLink, error) {
	id, err := row.getInt("link_id", -1)
	if err != nil {
		return nil, err
	}
	if id < 0 {
		return nil, errors.New("Empty link_id")
	}
	source, err := row.getInt("from_node_id", -1)
	if err != nil {
		return nil, err
	}
	target, err := row.getInt("to_node_id", -1)
	if err != nil {
		return nil, err
	}
	length, err := row.getFloat("length", -1)
	if err != nil {
		return nil, err
	}
	var geom orb.LineString
	if geomStr := row.get("geometry"); geomStr != "" {
		geom, err = wkt.UnmarshalLineString(geomStr)
		if err != nil {
			return nil, errors.Wrap(err, "Can't parse geometry")
		}
	}
	lanes, err := row.getInt("lanes", -1)
	if err != nil {
		return nil, err
	}
	freeSpeed, err := row.getFloat("free_speed", -1)
	if err != nil {
		return nil, err
	}
	capacity, err := row.getInt("capacity", -1)
	if err != nil {
		return nil, err
	}
	link := NewNetworkLink(NetworkLinkID(id), NetworkNodeID(source), NetworkNodeID(target), length, geom)
	link.SetAttributes(row.get("name"), row.get("osm_way_id"), row.get("link_type_name"), lanes, freeSpeed, capacity)
	return link, nil
}
