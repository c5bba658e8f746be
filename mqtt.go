package nodeflow

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

func mqttSetOptions(opts *mqtt.ClientOptions, globals *Globals) {
	opts.AddBroker(globals.MqttBroker)
	opts.SetKeepAlive(globals.MqttKeepAlive)
	opts.SetPingTimeout(globals.MqttPingTimeout)
	opts.SetAutoReconnect(globals.MqttAutoReconnect)
	opts.SetConnectTimeout(globals.MqttConnectTimeout)
	opts.SetCleanSession(globals.MqttCleanSession)
	opts.SetMaxReconnectInterval(globals.MqttReconnectInterval)
	if "" != globals.MqttUsername && "" != globals.MqttPassword {
		opts.Username = globals.MqttUsername
		opts.Password = globals.MqttPassword
	}
}

// mqttAwaitConnection 连续重试连接Broker，重试间隔随次数递增
func mqttAwaitConnection(client mqtt.Client, maxRetry int) {
	timer := time.NewTimer(time.Second)
	defer timer.Stop()
	for i := 1; i <= maxRetry; i++ {
		<-timer.C
		if token := client.Connect(); token.Wait() && nil != token.Error() {
			if i == maxRetry {
				log.Errorf("[%d] Mqtt客户端连接失败，最大次数：%v", i, token.Error())
			} else {
				log.Debugf("[%d] Mqtt客户端尝试重新连接，失败：%v", i, token.Error())
			}
			timer.Reset(time.Second * time.Duration(i))
		} else {
			log.Info("Mqtt客户端连接成功")
			break
		}
	}
}
