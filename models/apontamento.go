package models

import "time"

// Apontamento представляет одну запись учета рабочего времени.
// Тэги `db` используются для маппинга с полями БД с помощью sqlx.
// Тэги `json` задают формат обмена с сервисом /apontamento.
type Apontamento struct {
	ID                     int64      `db:"id" json:"id,omitempty"` // Назначается сервером, клиент не заполняет
	IDUsuario              string     `db:"id_usuario" json:"id_usuario"`
	IDCategoria            string     `db:"id_categoria" json:"id_categoria"`
	IDCliente              string     `db:"id_cliente" json:"id_cliente"`
	IDItemProjetoCategoria string     `db:"id_item_projeto_categoria" json:"id_item_projeto_categoria"`
	Data                   time.Time  `db:"data" json:"data"`
	Horas                  string     `db:"horas" json:"horas"` // Строка формата HH:mm
	Descricao              string     `db:"descricao" json:"descricao"`
	Projeto                string     `db:"projeto" json:"projeto"`
	Extra                  string     `db:"extra" json:"extra"`
	DataDeExclusao         *time.Time `db:"data_de_exclusao" json:"data_de_exclusao,omitempty"` // nil для активных записей
	StatusExtra            string     `db:"status_extra" json:"status_extra"`
	RespostaExtra          string     `db:"resposta_extra" json:"resposta_extra"`
	Observacao             string     `db:"observacao" json:"observacao"`
	Garantia               bool       `db:"garantia" json:"garantia"`
}

// Excluido сообщает, помечена ли запись как удаленная (мягкое удаление).
func (a Apontamento) Excluido() bool {
	return a.DataDeExclusao != nil
}
