package renderer

// Card markup for the two structured snapshot kinds. Field values are
// escaped by html/template; icon URLs go through URL filtering so a payload
// cannot smuggle a javascript: link.
const cardTemplates = `
{{define "portfolio"}}<div class="snapshot-card portfolio-card {{if .IsProfit}}is-profit{{else}}is-loss{{end}}">
<div class="card-header">
<span class="trend-icon">{{if .IsProfit}}&#9650;{{else}}&#9660;{{end}}</span>
<div class="card-title"><h3>{{.User}}&#39;s Portfolio</h3><span class="card-subtitle">{{.TotalHoldings}} assets</span></div>
</div>
<div class="card-summary">
<div class="summary-item"><span class="label">Total Value</span><span class="value">{{.TotalValue}}</span></div>
<div class="summary-item"><span class="label">Invested</span><span class="value">{{.Invested}}</span></div>
<div class="summary-item pnl"><span class="label">P&amp;L</span><span class="value">{{.Sign}}{{.ProfitLoss}}</span><span class="badge">{{.ProfitLossPct}}</span></div>
</div>
<div class="card-holdings">
{{range .Holdings}}<div class="holding {{if .IsProfit}}is-profit{{else}}is-loss{{end}}">
{{if .IconURL}}<img class="holding-icon" src="{{.IconURL}}" alt="{{.Crypto}}">{{else}}<span class="holding-initial">{{.Initial}}</span>{{end}}
<span class="holding-name">{{.Crypto}}</span>
<span class="holding-value">{{.CurrentValue}}</span>
<span class="holding-position">{{.Amount}} @ {{.CurrentPrice}}</span>
<span class="holding-pnl">{{.Sign}}{{.ProfitLoss}} ({{.ProfitLossPct}})</span>
</div>
{{end}}{{if gt .Overflow 0}}<div class="holding-overflow">+{{.Overflow}} more</div>{{end}}
</div>
</div>{{end}}

{{define "profit_loss"}}<div class="snapshot-card pnl-card {{if .IsProfit}}is-profit{{else}}is-loss{{end}}">
<div class="card-header">
<span class="trend-icon">{{if .IsProfit}}&#9650;{{else}}&#9660;{{end}}</span>
<div class="card-title"><h3>{{.User}}&#39;s Performance</h3><span class="card-subtitle">{{.PerformanceLevel}}</span></div>
<span class="performance-icon">{{.Icon}}</span>
</div>
<div class="card-summary">
<div class="summary-item"><span class="label">Total Invested</span><span class="value">{{.TotalInvested}}</span></div>
<div class="summary-item"><span class="label">Current Value</span><span class="value">{{.TotalCurrentValue}}</span></div>
<div class="summary-item pnl"><span class="label">Net P&amp;L</span><span class="value">{{.Sign}}{{.ProfitLoss}}</span><span class="badge">{{.ProfitLossPct}}</span></div>
</div>
<div class="performance-message">{{.PerformanceMessage}}</div>
{{if .Suggestion}}<div class="insight-callout"><span class="insight-label">&#128161; Investment Insight:</span> {{.Suggestion}}</div>{{end}}
{{if .Badges}}<div class="performance-badges">{{range .Badges}}<span class="performance-badge">{{.}}</span>{{end}}</div>{{end}}
</div>{{end}}
`
