package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/alexb2611/picogrow/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"pct": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f)
	},
	"hz": func(f float64) string {
		return fmt.Sprintf("%.2f Hz", f)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Grow Monitor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.dry { color: #b8860b; font-weight: bold; }
.moist { color: green; font-weight: bold; }
.wet { color: #1e6fd9; font-weight: bold; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Grow Monitor</h1>

<h2>Reading</h2>
<table>
{{if .LastReading}}
<tr><th>Moisture</th><td class="{{if eq .LastReading.Level "DRY"}}dry{{else if eq .LastReading.Level "MOIST"}}moist{{else}}wet{{end}}">{{pct .LastReading.Percent}} ({{.LastReading.Level}})</td></tr>
<tr><th>Frequency</th><td>{{hz .LastReading.Frequency}}</td></tr>
<tr><th>Taken</th><td>{{.LastReading.Time.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
{{else}}
<tr><th>Moisture</th><td class="unknown">no reading yet</td></tr>
{{end}}
<tr><th>Readings</th><td>{{.ReadingCount}}</td></tr>
<tr><th>Errors</th><td>{{.ErrorCount}}</td></tr>
</table>

<h2>Calibration</h2>
<table>
<tr><th>Dry point</th><td>{{hz .Calibration.DryFreq}}</td></tr>
<tr><th>Wet point</th><td>{{hz .Calibration.WetFreq}}</td></tr>
<tr><th>Source</th><td>{{.CalSource}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
<tr><th>Time sync</th><td>{{if .TimeSynced}}synced ({{.ClockOffset}}){{else}}not synced{{end}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Sensor pin</th><td>GPIO{{.Config.SensorPin}}</td></tr>
<tr><th>Sample window</th><td>{{.Config.SampleWindowMs}}ms</td></tr>
<tr><th>Interval</th><td>{{.Config.IntervalMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Calibration file</th><td>{{.Config.CalibFile}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
